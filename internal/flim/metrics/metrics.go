package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the flim module.
// All methods are safe on a nil receiver so tests can skip metrics.
type Metrics struct {
	FlimsCreated       prometheus.Counter
	FlimsUpdated       prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	StoreSize          prometheus.Gauge
}

// New creates the flim metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FlimsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "flims_created_total",
			Help: "Total number of flims created",
		}),
		FlimsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "flims_updated_total",
			Help: "Total number of flim updates applied",
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flims_validation_failures_total",
			Help: "Rejected request fields by field name",
		}, []string{"field"}),
		StoreSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "flims_store_size",
			Help: "Number of flims currently held in memory",
		}),
	}
}

// IncrementCreated records a successful create.
func (m *Metrics) IncrementCreated() {
	if m != nil {
		m.FlimsCreated.Inc()
	}
}

// IncrementUpdated records a successful update.
func (m *Metrics) IncrementUpdated() {
	if m != nil {
		m.FlimsUpdated.Inc()
	}
}

// IncrementValidationFailure records one rejected field.
func (m *Metrics) IncrementValidationFailure(field string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(field).Inc()
	}
}

// SetStoreSize records the current number of records.
func (m *Metrics) SetStoreSize(n int) {
	if m != nil {
		m.StoreSize.Set(float64(n))
	}
}
