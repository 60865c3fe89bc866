// Package service runs the payment request protocol for one relying origin:
// a single in-flight request, instrument matching across registered
// handlers, handler engagement, and the abort race.
package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"paymediator/internal/audit"
	instrument "paymediator/internal/instrument/models"
	"paymediator/internal/mediator/metrics"
	"paymediator/internal/mediator/models"
	"paymediator/internal/remote"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/requestcontext"
)

const (
	// DefaultAbortTimeout bounds the handler's abortPayment call.
	DefaultAbortTimeout = 40 * time.Second

	handlerInterface   = "paymentHandler"
	fnRequestPayment   = "requestPayment"
	fnAbortPayment     = "abortPayment"
	defaultConcurrency = 8
)

// RegistrationLister enumerates every registered handler URL.
type RegistrationLister interface {
	AllRegistrations(ctx context.Context) ([]string, error)
}

// InstrumentSource reads handler instrument stores without origin checks.
type InstrumentSource interface {
	Get(ctx context.Context, handlerURL, key string) (*instrument.Record, error)
	Match(ctx context.Context, handlerURL string, pred func(*instrument.Record) bool) ([]instrument.Match, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// UI is implemented by whatever presents the request to the user.
//
// Show is handed the new request and returns the final response once the
// user completed (or gave up on) the payment. Abort acknowledges an abort
// after the handler agreed to it.
type UI struct {
	Show  func(ctx context.Context, state models.RequestState) (*models.PaymentResponse, error)
	Abort func(ctx context.Context, state models.RequestState) error
}

// AbortingShow is the Show used when the host supplies none: every request
// is aborted.
func AbortingShow(context.Context, models.RequestState) (*models.PaymentResponse, error) {
	return nil, dErrors.New(dErrors.CodeAborted, "PaymentRequest aborted.")
}

// NoopAbort is the Abort used when the host supplies none.
func NoopAbort(context.Context, models.RequestState) error {
	return nil
}

// WindowCustomizer may adjust the options a handler is loaded with.
type WindowCustomizer func(ctx context.Context, opts *remote.Options) error

// Service is the mediator of one relying origin. At most one request is in
// flight per Service.
type Service struct {
	origin           domain.Origin
	registrations    RegistrationLister
	instruments      InstrumentSource
	loader           remote.Loader
	ui               UI
	policy           MatchPolicy
	customizeWindow  WindowCustomizer
	abortTimeout     time.Duration
	matchConcurrency int
	logger           *slog.Logger
	auditPublisher   AuditPublisher
	metrics          *metrics.Metrics
	tracer           trace.Tracer

	mu    sync.Mutex
	state *requestState
}

type Option func(*Service)

func WithUI(ui UI) Option {
	return func(s *Service) {
		if ui.Show != nil {
			s.ui.Show = ui.Show
		}
		if ui.Abort != nil {
			s.ui.Abort = ui.Abort
		}
	}
}

func WithMatchPolicy(policy MatchPolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.policy = policy
		}
	}
}

func WithWindowCustomizer(fn WindowCustomizer) Option {
	return func(s *Service) {
		s.customizeWindow = fn
	}
}

func WithAbortTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.abortTimeout = d
		}
	}
}

// WithMatchConcurrency bounds how many handler stores are scanned at once.
func WithMatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.matchConcurrency = n
		}
	}
}

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

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New constructs the mediator for origin.
func New(
	origin domain.Origin,
	registrations RegistrationLister,
	instruments InstrumentSource,
	loader remote.Loader,
	opts ...Option,
) (*Service, error) {
	if origin.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "origin is required")
	}
	if registrations == nil || instruments == nil || loader == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "mediator dependencies are required")
	}
	s := &Service{
		origin:           origin,
		registrations:    registrations,
		instruments:      instruments,
		loader:           loader,
		ui:               UI{Show: AbortingShow, Abort: NoopAbort},
		policy:           DefaultMatchPolicy,
		abortTimeout:     DefaultAbortTimeout,
		matchConcurrency: defaultConcurrency,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:           otel.Tracer("paymediator/mediator"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Origin() domain.Origin {
	return s.origin
}

// Current returns a snapshot of the in-flight request.
func (s *Service) Current() (models.RequestState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return models.RequestState{}, false
	}
	return s.state.snapshot(), true
}

// MatchPaymentInstruments lists every stored instrument, across all
// registered handlers, that can serve req.
func (s *Service) MatchPaymentInstruments(ctx context.Context, req *models.PaymentRequest) ([]instrument.Match, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	matches, err := s.match(ctx, req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to match payment instruments")
	}
	return matches, nil
}

// CanMakePayment reports whether any instrument can serve req. It never
// creates request state.
func (s *Service) CanMakePayment(ctx context.Context, req *models.PaymentRequest) (bool, error) {
	matches, err := s.MatchPaymentInstruments(ctx, req)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// ShippingAddressChange records the address the user picked.
func (s *Service) ShippingAddressChange(ctx context.Context, addr models.ShippingAddress) (models.RequestState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return models.RequestState{}, noActiveRequest()
	}
	s.state.view.ShippingAddress = &addr
	s.logger.InfoContext(ctx, "shipping address changed",
		"origin", s.origin,
		"payment_request_id", s.state.view.ID,
	)
	return s.state.snapshot(), nil
}

// ShippingOptionChange records the shipping option the user picked. The
// option must be one the request offered.
func (s *Service) ShippingOptionChange(ctx context.Context, optionID string) (models.RequestState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return models.RequestState{}, noActiveRequest()
	}
	if _, ok := s.state.view.PaymentRequest.ShippingOption(optionID); !ok {
		return models.RequestState{}, dErrors.Newf(dErrors.CodeInvalidArgument, "unknown shipping option %q", optionID)
	}
	s.state.view.ShippingOption = optionID
	s.logger.InfoContext(ctx, "shipping option changed",
		"origin", s.origin,
		"payment_request_id", s.state.view.ID,
		"shipping_option", optionID,
	)
	return s.state.snapshot(), nil
}

func noActiveRequest() error {
	return dErrors.New(dErrors.CodeNoActiveRequest, "no payment request is in progress")
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, subject, reason string) {
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Origin:    s.origin.String(),
		Action:    string(action),
		Subject:   subject,
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}
