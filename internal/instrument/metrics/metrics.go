package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks writes to handler instrument stores.
type Metrics struct {
	InstrumentWrites  *prometheus.CounterVec
	InstrumentsPurged prometheus.Counter
}

// New registers the instrument metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		InstrumentWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "paymediator_instrument_writes_total",
			Help: "Instrument store mutations by operation (set, delete, clear)",
		}, []string{"operation"}),
		InstrumentsPurged: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymediator_instrument_stores_destroyed_total",
			Help: "Instrument stores destroyed because their handler was unregistered",
		}),
	}
}

// IncrementWrite records one mutation.
func (m *Metrics) IncrementWrite(operation string) {
	m.InstrumentWrites.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrementPurged() {
	m.InstrumentsPurged.Inc()
}
