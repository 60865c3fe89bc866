// Package app assembles the per-origin services from shared
// infrastructure.
package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	instrumentmetrics "paymediator/internal/instrument/metrics"
	instrument "paymediator/internal/instrument/service"
	mediatormetrics "paymediator/internal/mediator/metrics"
	"paymediator/internal/mediator/models"
	mediator "paymediator/internal/mediator/service"
	permission "paymediator/internal/permission/service"
	"paymediator/internal/presenter"
	registrationmetrics "paymediator/internal/registration/metrics"
	registration "paymediator/internal/registration/service"
	"paymediator/internal/registration/store"
	"paymediator/internal/remote"
	"paymediator/internal/storage"
	"paymediator/pkg/domain"
)

// Hooks are the host's customization points. Every field is optional.
type Hooks struct {
	// Show presents a new payment request and returns the final response.
	// Default: a headless presenter per origin, settled through the API
	// (selecting an instrument resolves it, aborting rejects it).
	Show func(ctx context.Context, state models.RequestState) (*models.PaymentResponse, error)
	// Abort acknowledges an abort the handler agreed to. Default: rejects
	// the parked presenter request, or does nothing with a custom Show.
	Abort func(ctx context.Context, state models.RequestState) error
	// RequestPermission decides permission requests. Default: deny all.
	RequestPermission permission.Requester
	// CustomizeHandlerWindow may adjust how a handler is loaded. Default:
	// the handler URL is loaded unchanged.
	CustomizeHandlerWindow mediator.WindowCustomizer
}

// AuditPublisher receives audit events from every service.
type AuditPublisher = mediator.AuditPublisher

// Services owns the shared stores (including the process-wide origin
// index) and caches one registry, instrument service and mediator per
// relying origin for the life of the process.
type Services struct {
	permissions   *permission.Manager
	index         *store.OriginIndex
	registrations *store.RegistrationStore
	directory     *registration.Directory
	instruments   *instrument.Repository
	loader        remote.Loader

	hooks          Hooks
	abortTimeout   time.Duration
	logger         *slog.Logger
	auditPublisher AuditPublisher

	instrumentMetrics   *instrumentmetrics.Metrics
	registrationMetrics *registrationmetrics.Metrics
	mediatorMetrics     *mediatormetrics.Metrics

	mu          sync.Mutex
	registries  map[domain.Origin]*registration.Registry
	instrSvcs   map[domain.Origin]*instrument.Service
	paymentSvcs map[domain.Origin]*PaymentSession
}

type Option func(*Services)

func WithHooks(h Hooks) Option {
	return func(s *Services) {
		s.hooks = h
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Services) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Services) {
		s.auditPublisher = publisher
	}
}

func WithAbortTimeout(d time.Duration) Option {
	return func(s *Services) {
		s.abortTimeout = d
	}
}

// WithMetricsRegisterer registers the module metrics with reg instead of
// the default registerer.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(s *Services) {
		s.instrumentMetrics = instrumentmetrics.New(reg)
		s.registrationMetrics = registrationmetrics.New(reg)
		s.mediatorMetrics = mediatormetrics.New(reg)
	}
}

// NewServices wires the shared stores over backend.
func NewServices(backend storage.Backend, loader remote.Loader, opts ...Option) *Services {
	s := &Services{
		index:         store.NewOriginIndex(backend),
		registrations: store.NewRegistrationStore(backend),
		instruments:   instrument.NewRepository(backend),
		loader:        loader,
		abortTimeout:  mediator.DefaultAbortTimeout,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		registries:    make(map[domain.Origin]*registration.Registry),
		instrSvcs:     make(map[domain.Origin]*instrument.Service),
		paymentSvcs:   make(map[domain.Origin]*PaymentSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.directory = registration.NewDirectory(s.index, s.registrations)

	requester := s.hooks.RequestPermission
	if requester == nil {
		requester = permission.DenyAll
	}
	permOpts := []permission.Option{permission.WithRequester(requester), permission.WithLogger(s.logger)}
	if s.auditPublisher != nil {
		permOpts = append(permOpts, permission.WithAuditPublisher(s.auditPublisher))
	}
	s.permissions = permission.New(backend, permOpts...)
	return s
}

// Permissions returns the shared permission gate.
func (s *Services) Permissions() *permission.Manager {
	return s.permissions
}

// Directory enumerates registrations across all origins.
func (s *Services) Directory() *registration.Directory {
	return s.directory
}

func (s *Services) Registry(origin domain.Origin) (RegistryService, error) {
	return s.registry(origin)
}

func (s *Services) registry(origin domain.Origin) (*registration.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.registries[origin]; ok {
		return r, nil
	}
	opts := []registration.Option{registration.WithLogger(s.logger)}
	if s.auditPublisher != nil {
		opts = append(opts, registration.WithAuditPublisher(s.auditPublisher))
	}
	if s.registrationMetrics != nil {
		opts = append(opts, registration.WithMetrics(s.registrationMetrics))
	}
	r, err := registration.New(origin, s.index, s.registrations, s.instruments, s.permissions, opts...)
	if err != nil {
		return nil, err
	}
	s.registries[origin] = r
	return r, nil
}

func (s *Services) Instruments(origin domain.Origin) (InstrumentService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc, ok := s.instrSvcs[origin]; ok {
		return svc, nil
	}
	opts := []instrument.Option{instrument.WithLogger(s.logger)}
	if s.auditPublisher != nil {
		opts = append(opts, instrument.WithAuditPublisher(s.auditPublisher))
	}
	if s.instrumentMetrics != nil {
		opts = append(opts, instrument.WithMetrics(s.instrumentMetrics))
	}
	svc, err := instrument.New(origin, s.instruments, s.permissions, opts...)
	if err != nil {
		return nil, err
	}
	s.instrSvcs[origin] = svc
	return svc, nil
}

func (s *Services) Payments(origin domain.Origin) (PaymentService, error) {
	return s.payments(origin)
}

func (s *Services) payments(origin domain.Origin) (*PaymentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.paymentSvcs[origin]; ok {
		return p, nil
	}

	session := &PaymentSession{}
	ui := mediator.UI{Show: s.hooks.Show, Abort: s.hooks.Abort}
	if ui.Show == nil {
		session.presenter = presenter.New()
		ui.Show = session.presenter.Show
		if ui.Abort == nil {
			ui.Abort = session.presenter.Abort
		}
	}

	opts := []mediator.Option{
		mediator.WithUI(ui),
		mediator.WithLogger(s.logger),
		mediator.WithAbortTimeout(s.abortTimeout),
		mediator.WithWindowCustomizer(s.hooks.CustomizeHandlerWindow),
	}
	if s.auditPublisher != nil {
		opts = append(opts, mediator.WithAuditPublisher(s.auditPublisher))
	}
	if s.mediatorMetrics != nil {
		opts = append(opts, mediator.WithMetrics(s.mediatorMetrics))
	}
	m, err := mediator.New(origin, s.directory, s.instruments, s.loader, opts...)
	if err != nil {
		return nil, err
	}
	session.Service = m
	s.paymentSvcs[origin] = session
	return session, nil
}

// PaymentSession is a mediator plus, when the host did not supply its own
// Show, the presenter that parks Show until the API settles it.
type PaymentSession struct {
	*mediator.Service
	presenter *presenter.Presenter
}

// SelectPaymentInstrument engages the handler and, on success, completes
// the parked Show with the handler's response.
func (p *PaymentSession) SelectPaymentInstrument(ctx context.Context, sel models.Selection) (*models.PaymentResponse, error) {
	id, resp, err := p.Service.SelectForRequest(ctx, sel)
	if err != nil {
		return nil, err
	}
	if p.presenter != nil {
		if err := p.presenter.ResolveRequest(id, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

var (
	_ Resolver          = (*Services)(nil)
	_ PermissionService = (*permission.Manager)(nil)
	_ PaymentService    = (*PaymentSession)(nil)
)
