package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"paymediator/internal/audit"
	"paymediator/internal/instrument/metrics"
	"paymediator/internal/instrument/models"
	permission "paymediator/internal/permission/models"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/requestcontext"
)

// PermissionChecker is satisfied by the permission manager.
type PermissionChecker interface {
	Require(ctx context.Context, origin domain.Origin, name permission.Name) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the instrument CRUD surface for one relying origin. Handler
// URLs are normalized against the bound origin and every call requires the
// paymenthandler permission.
type Service struct {
	origin         domain.Origin
	repo           *Repository
	permissions    PermissionChecker
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New binds an instrument service to origin.
func New(origin domain.Origin, repo *Repository, permissions PermissionChecker, opts ...Option) (*Service, error) {
	if origin.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "origin is required")
	}
	if repo == nil || permissions == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "instrument repository and permission checker are required")
	}
	s := &Service{
		origin:      origin,
		repo:        repo,
		permissions: permissions,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Origin returns the relying origin the service is bound to.
func (s *Service) Origin() domain.Origin {
	return s.origin
}

// Get returns the redacted instrument or nil when absent.
func (s *Service) Get(ctx context.Context, handlerURL, key string) (*models.Record, error) {
	url, err := s.prepare(ctx, handlerURL, key)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.Get(ctx, url, key)
	if err != nil || rec == nil {
		return nil, err
	}
	return rec.Redacted(), nil
}

// Set validates rec and stores it under key, replacing any previous record.
func (s *Service) Set(ctx context.Context, handlerURL, key string, rec *models.Record) error {
	url, err := s.prepare(ctx, handlerURL, key)
	if err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, url, key, rec); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "instrument stored",
		"origin", s.origin,
		"handler_url", url,
		"instrument_key", key,
	)
	s.recordWrite(ctx, audit.EventInstrumentSet, url, key)
	return nil
}

// Delete reports whether a record was removed.
func (s *Service) Delete(ctx context.Context, handlerURL, key string) (bool, error) {
	url, err := s.prepare(ctx, handlerURL, key)
	if err != nil {
		return false, err
	}
	removed, err := s.repo.Delete(ctx, url, key)
	if err != nil {
		return false, err
	}
	if removed {
		s.recordWrite(ctx, audit.EventInstrumentDeleted, url, key)
	}
	return removed, nil
}

func (s *Service) Has(ctx context.Context, handlerURL, key string) (bool, error) {
	rec, err := s.Get(ctx, handlerURL, key)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

func (s *Service) Keys(ctx context.Context, handlerURL string) ([]string, error) {
	url, err := s.prepareURL(ctx, handlerURL)
	if err != nil {
		return nil, err
	}
	return s.repo.Keys(ctx, url)
}

func (s *Service) Clear(ctx context.Context, handlerURL string) error {
	url, err := s.prepareURL(ctx, handlerURL)
	if err != nil {
		return err
	}
	if err := s.repo.Clear(ctx, url); err != nil {
		return err
	}
	s.recordWrite(ctx, audit.EventInstrumentsClear, url, "")
	return nil
}

func (s *Service) prepare(ctx context.Context, handlerURL, key string) (string, error) {
	url, err := s.prepareURL(ctx, handlerURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(key) == "" {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "instrument key is required")
	}
	return url, nil
}

func (s *Service) prepareURL(ctx context.Context, handlerURL string) (string, error) {
	url, err := s.origin.NormalizeURL(handlerURL)
	if err != nil {
		return "", err
	}
	if err := s.permissions.Require(ctx, s.origin, permission.PaymentHandler); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) recordWrite(ctx context.Context, action audit.AuditEvent, url, key string) {
	if s.metrics != nil {
		s.metrics.IncrementWrite(strings.TrimPrefix(string(action), "instrument_"))
	}
	if s.auditPublisher == nil {
		return
	}
	subject := url
	if key != "" {
		subject = url + "#" + key
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Origin:    s.origin.String(),
		Action:    string(action),
		Subject:   subject,
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}
