// Package metrics provides observability for the supplychain module.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks transition outcomes and settlement volume.
type Metrics struct {
	Transitions        *prometheus.CounterVec
	TransitionDuration prometheus.Histogram
	SettledAmount      prometheus.Counter
}

var (
	defaultOnce sync.Once
	defaultSet  *Metrics
)

// New returns the process-wide Metrics registered on the default registry.
// The default registry rejects duplicate registration, so construction
// happens exactly once.
func New() *Metrics {
	defaultOnce.Do(func() {
		defaultSet = NewWith(prometheus.DefaultRegisterer)
	})
	return defaultSet
}

// NewWith registers the supplychain metrics on reg. Tests pass a fresh
// registry so repeated construction never collides.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beantrail_transitions_total",
			Help: "Lifecycle transitions by name and outcome",
		}, []string{"transition", "outcome"}),
		TransitionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "beantrail_transition_duration_seconds",
			Help:    "Duration of lifecycle transitions end to end",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SettledAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "beantrail_settled_amount_total",
			Help: "Total funds moved through escrow settlement",
		}),
	}
}

// ObserveTransition records one transition attempt and its duration.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTransition(name string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Transitions.WithLabelValues(name, outcome).Inc()
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}

// AddSettled records funds moved by a successful settlement.
func (m *Metrics) AddSettled(amount uint64) {
	m.SettledAmount.Add(float64(amount))
}
