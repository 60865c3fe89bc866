package service

import (
	"context"
	"errors"

	"paymediator/internal/instrument/models"
	"paymediator/internal/storage"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/platform/sentinel"
)

const namespacePrefix = "paymentInstruments_"

// Repository is the storage-level view of instrument stores, keyed by
// normalized handler URL. It performs no origin or permission checks; the
// registry and the mediator use it directly, callers acting for a relying
// origin go through Service.
type Repository struct {
	backend storage.Backend
}

func NewRepository(backend storage.Backend) *Repository {
	return &Repository{backend: backend}
}

// Get returns nil, nil when the key is absent.
func (r *Repository) Get(ctx context.Context, handlerURL, key string) (*models.Record, error) {
	rec, err := storage.GetJSON[models.Record](ctx, r.namespace(handlerURL), key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load instrument")
	}
	return rec, nil
}

func (r *Repository) Set(ctx context.Context, handlerURL, key string, rec *models.Record) error {
	if err := storage.SetJSON(ctx, r.namespace(handlerURL), key, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store instrument")
	}
	return nil
}

// Delete reports whether the key existed.
func (r *Repository) Delete(ctx context.Context, handlerURL, key string) (bool, error) {
	ns := r.namespace(handlerURL)
	if _, err := ns.Get(ctx, key); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load instrument")
	}
	if err := ns.Remove(ctx, key); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete instrument")
	}
	return true, nil
}

func (r *Repository) Keys(ctx context.Context, handlerURL string) ([]string, error) {
	keys, err := r.namespace(handlerURL).Keys(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list instruments")
	}
	return keys, nil
}

func (r *Repository) Clear(ctx context.Context, handlerURL string) error {
	if err := r.namespace(handlerURL).Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear instruments")
	}
	return nil
}

// Destroy removes every instrument of a handler. Destroying an empty store
// is not an error.
func (r *Repository) Destroy(ctx context.Context, handlerURL string) error {
	return r.Clear(ctx, handlerURL)
}

// Match returns the handler's instruments accepted by pred, in storage
// iteration order. Records are redacted. A nil pred accepts everything.
func (r *Repository) Match(ctx context.Context, handlerURL string, pred func(*models.Record) bool) ([]models.Match, error) {
	var matches []models.Match
	err := storage.IterateJSON(ctx, r.namespace(handlerURL), func(key string, rec *models.Record) error {
		if pred == nil || pred(rec) {
			matches = append(matches, models.Match{
				PaymentHandler:       handlerURL,
				PaymentInstrumentKey: key,
				PaymentInstrument:    rec.Redacted(),
			})
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to match instruments")
	}
	return matches, nil
}

func (r *Repository) namespace(handlerURL string) storage.Namespace {
	return r.backend.Namespace(namespacePrefix + handlerURL)
}
