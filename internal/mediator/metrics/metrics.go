package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the payment request lifecycle.
type Metrics struct {
	ActiveRequests      prometheus.Gauge
	RequestsSettled     *prometheus.CounterVec
	HandlerLoadFailures prometheus.Counter
	AbortOutcomes       *prometheus.CounterVec
	SelectionDuration   prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ActiveRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "paymediator_active_payment_requests",
			Help: "Payment requests currently being shown",
		}),
		RequestsSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "paymediator_payment_requests_total",
			Help: "Payment requests settled, by outcome (completed, failed)",
		}, []string{"outcome"}),
		HandlerLoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymediator_handler_load_failures_total",
			Help: "Payment handlers that failed to load or bind",
		}),
		AbortOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "paymediator_abort_outcomes_total",
			Help: "Abort attempts by outcome (resolved, rejected)",
		}, []string{"outcome"}),
		// requestPayment waits on the user, so buckets reach into minutes.
		SelectionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "paymediator_selection_duration_seconds",
			Help:    "Duration from instrument selection to handler response",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 180, 600},
		}),
	}
}

func (m *Metrics) RequestStarted() {
	m.ActiveRequests.Inc()
}

// RequestSettled records the end of Show.
func (m *Metrics) RequestSettled(outcome string) {
	m.ActiveRequests.Dec()
	m.RequestsSettled.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementLoadFailure() {
	m.HandlerLoadFailures.Inc()
}

func (m *Metrics) IncrementAbort(outcome string) {
	m.AbortOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveSelection records the duration of a selection.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSelection(start time.Time) {
	m.SelectionDuration.Observe(time.Since(start).Seconds())
}
