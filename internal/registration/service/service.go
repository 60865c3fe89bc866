package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"paymediator/internal/audit"
	permission "paymediator/internal/permission/models"
	"paymediator/internal/registration/metrics"
	"paymediator/internal/registration/models"
	"paymediator/internal/registration/store"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/platform/sentinel"
	"paymediator/pkg/requestcontext"
)

// PermissionChecker is satisfied by the permission manager.
type PermissionChecker interface {
	Require(ctx context.Context, origin domain.Origin, name permission.Name) error
}

// InstrumentDestroyer removes every instrument of a handler.
type InstrumentDestroyer interface {
	Destroy(ctx context.Context, handlerURL string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Registry holds the payment handlers registered by one relying origin.
type Registry struct {
	origin         domain.Origin
	namespace      string
	index          *store.OriginIndex
	registrations  *store.RegistrationStore
	instruments    InstrumentDestroyer
	permissions    PermissionChecker
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(r *Registry) {
		r.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// New binds a registry to origin. index is the process-wide origin index.
func New(
	origin domain.Origin,
	index *store.OriginIndex,
	registrations *store.RegistrationStore,
	instruments InstrumentDestroyer,
	permissions PermissionChecker,
	opts ...Option,
) (*Registry, error) {
	if origin.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "origin is required")
	}
	if index == nil || registrations == nil || instruments == nil || permissions == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "registry dependencies are required")
	}
	r := &Registry{
		origin:        origin,
		namespace:     store.RegistryNamespace(origin),
		index:         index,
		registrations: registrations,
		instruments:   instruments,
		permissions:   permissions,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Registry) Origin() domain.Origin {
	return r.origin
}

// Register records handlerURL for the bound origin. Registering an already
// registered URL returns the existing registration unchanged.
func (r *Registry) Register(ctx context.Context, handlerURL string) (*models.Registration, error) {
	url, err := r.origin.NormalizeURL(handlerURL)
	if err != nil {
		return nil, err
	}
	if err := r.permissions.Require(ctx, r.origin, permission.PaymentHandler); err != nil {
		return nil, err
	}

	existing, err := r.find(ctx, url)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := r.index.Add(ctx, r.origin, r.namespace); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to index origin")
	}
	reg := models.Registration{
		URL:          url,
		Origin:       r.origin.String(),
		RegisteredAt: requestcontext.Now(ctx),
	}
	if err := r.registrations.Save(ctx, r.namespace, reg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save registration")
	}

	r.logger.InfoContext(ctx, "payment handler registered",
		"origin", r.origin,
		"handler_url", url,
	)
	if r.metrics != nil {
		r.metrics.IncrementRegistered()
	}
	r.emit(ctx, audit.EventHandlerRegistered, url)
	return &reg, nil
}

// Unregister removes the registration and every instrument stored under it.
// It reports false when handlerURL was not registered.
func (r *Registry) Unregister(ctx context.Context, handlerURL string) (bool, error) {
	url, err := r.origin.NormalizeURL(handlerURL)
	if err != nil {
		return false, err
	}
	existing, err := r.find(ctx, url)
	if err != nil || existing == nil {
		return false, err
	}

	// Instruments go first so a failure leaves the registration in place and
	// the call can be retried.
	err = r.registrations.Atomically(ctx, func(ctx context.Context) error {
		if err := r.instruments.Destroy(ctx, url); err != nil {
			return err
		}
		if err := r.registrations.Remove(ctx, r.namespace, url); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove registration")
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	r.logger.InfoContext(ctx, "payment handler unregistered",
		"origin", r.origin,
		"handler_url", url,
	)
	if r.metrics != nil {
		r.metrics.IncrementUnregistered()
	}
	r.emit(ctx, audit.EventHandlerUnregistered, url)
	return true, nil
}

// GetRegistration returns nil when handlerURL is not registered.
func (r *Registry) GetRegistration(ctx context.Context, handlerURL string) (*models.Registration, error) {
	url, err := r.origin.NormalizeURL(handlerURL)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, url)
}

func (r *Registry) HasRegistration(ctx context.Context, handlerURL string) (bool, error) {
	reg, err := r.GetRegistration(ctx, handlerURL)
	if err != nil {
		return false, err
	}
	return reg != nil, nil
}

func (r *Registry) find(ctx context.Context, url string) (*models.Registration, error) {
	reg, err := r.registrations.Find(ctx, r.namespace, url)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	return reg, nil
}

func (r *Registry) emit(ctx context.Context, action audit.AuditEvent, url string) {
	if r.auditPublisher == nil {
		return
	}
	err := r.auditPublisher.Emit(ctx, audit.Event{
		Origin:    r.origin.String(),
		Action:    string(action),
		Subject:   url,
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		r.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}
