package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for handler registration.
type Metrics struct {
	HandlersRegistered   prometheus.Counter
	HandlersUnregistered prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		HandlersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymediator_handlers_registered_total",
			Help: "Payment handlers newly registered (idempotent re-registrations excluded)",
		}),
		HandlersUnregistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymediator_handlers_unregistered_total",
			Help: "Payment handlers unregistered",
		}),
	}
}

func (m *Metrics) IncrementRegistered() {
	m.HandlersRegistered.Inc()
}

func (m *Metrics) IncrementUnregistered() {
	m.HandlersUnregistered.Inc()
}
