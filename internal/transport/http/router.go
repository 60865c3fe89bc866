package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paymediator/internal/platform/metrics"
	"paymediator/internal/platform/middleware"
	"paymediator/pkg/platform/httputil"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries the process-level collaborators of the router.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Health   []HealthCheck
}

// NewRouter wires the operational endpoints and the origin-bound API.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger, cfg.Metrics))

	r.Get("/health", healthHandler(cfg.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RelyingOrigin)
		r.Use(middleware.AncestorOrigins)
		h.Register(r)
	})
	return r
}

// Register mounts the origin-bound routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/permissions/{name}", h.handleQueryPermission)
	r.Post("/permissions/{name}", h.handleRequestPermission)

	r.Route("/handlers", func(r chi.Router) {
		r.Post("/registrations", h.handleRegister)
		r.Get("/registrations", h.handleGetRegistration)
		r.Delete("/registrations", h.handleUnregister)

		r.Get("/instruments", h.handleInstrumentKeys)
		r.Delete("/instruments", h.handleClearInstruments)
		r.Get("/instruments/{key}", h.handleGetInstrument)
		r.Put("/instruments/{key}", h.handleSetInstrument)
		r.Delete("/instruments/{key}", h.handleDeleteInstrument)
	})

	r.Route("/payment-request", func(r chi.Router) {
		r.Get("/", h.handleCurrentRequest)
		r.Post("/show", h.handleShow)
		r.Post("/select", h.handleSelect)
		r.Post("/abort", h.handleAbort)
		r.Post("/can-make-payment", h.handleCanMakePayment)
		r.Post("/instruments", h.handleMatchInstruments)
		r.Post("/shipping-address", h.handleShippingAddress)
		r.Post("/shipping-option", h.handleShippingOption)
	})
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
