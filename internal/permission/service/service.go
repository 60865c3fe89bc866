package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"paymediator/internal/audit"
	"paymediator/internal/permission/models"
	"paymediator/internal/storage"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/platform/sentinel"
	"paymediator/pkg/requestcontext"
)

const namespacePrefix = "permissions_"

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Manager is the permission gate. Decisions are persisted per origin so a
// grant survives restarts when the backend is durable.
type Manager struct {
	backend        storage.Backend
	requester      Requester
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Manager)

// WithRequester installs the capability consulted by Request. Without it the
// manager denies every request.
func WithRequester(r Requester) Option {
	return func(m *Manager) {
		if r != nil {
			m.requester = r
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(m *Manager) {
		m.auditPublisher = publisher
	}
}

// New constructs a Manager.
func New(backend storage.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend:   backend,
		requester: DenyAll,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Query returns the stored decision; origins that never asked are denied.
func (m *Manager) Query(ctx context.Context, origin domain.Origin, desc models.Descriptor) (models.Status, error) {
	if err := desc.Validate(); err != nil {
		return models.Status{}, err
	}
	decision, err := storage.GetJSON[models.Decision](ctx, m.namespace(origin), string(desc.Name))
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Status{State: models.StateDenied}, nil
	}
	if err != nil {
		return models.Status{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load permission")
	}
	return models.Status{State: decision.State}, nil
}

// Request returns an existing grant without consulting the requester.
// Otherwise the requester decides and the decision is persisted.
func (m *Manager) Request(ctx context.Context, origin domain.Origin, desc models.Descriptor) (models.Status, error) {
	current, err := m.Query(ctx, origin, desc)
	if err != nil {
		return models.Status{}, err
	}
	if current.IsGranted() {
		return current, nil
	}

	state, err := m.requester(ctx, origin, desc)
	if err != nil {
		return models.Status{}, dErrors.Wrap(err, dErrors.CodeInternal, "permission request failed")
	}
	if state != models.StateGranted {
		state = models.StateDenied
	}

	decision := models.Decision{Name: desc.Name, State: state, DecidedAt: requestcontext.Now(ctx)}
	if err := storage.SetJSON(ctx, m.namespace(origin), string(desc.Name), decision); err != nil {
		return models.Status{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist permission")
	}

	m.logger.InfoContext(ctx, "permission decided",
		"origin", origin,
		"permission", desc.Name,
		"state", state,
	)
	m.emit(ctx, origin, desc, state)
	return models.Status{State: state}, nil
}

// Revoke forgets a decision so the next Request consults the requester again.
func (m *Manager) Revoke(ctx context.Context, origin domain.Origin, desc models.Descriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	if err := m.namespace(origin).Remove(ctx, string(desc.Name)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke permission")
	}
	return nil
}

// Require is the check used by gated services: anything other than
// "granted" becomes CodePermissionDenied.
func (m *Manager) Require(ctx context.Context, origin domain.Origin, name models.Name) error {
	status, err := m.Query(ctx, origin, models.Descriptor{Name: name})
	if err != nil {
		return err
	}
	if !status.IsGranted() {
		return dErrors.Newf(dErrors.CodePermissionDenied, "permission %q denied", name)
	}
	return nil
}

func (m *Manager) namespace(origin domain.Origin) storage.Namespace {
	return m.backend.Namespace(namespacePrefix + origin.String())
}

func (m *Manager) emit(ctx context.Context, origin domain.Origin, desc models.Descriptor, state models.State) {
	if m.auditPublisher == nil {
		return
	}
	action := audit.EventPermissionGranted
	if state != models.StateGranted {
		action = audit.EventPermissionDenied
	}
	err := m.auditPublisher.Emit(ctx, audit.Event{
		Origin:    origin.String(),
		Action:    string(action),
		Subject:   string(desc.Name),
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		m.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}
