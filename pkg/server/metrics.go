package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the lookup collectors. It satisfies lookup.Observer.
type Metrics struct {
	gatherer prometheus.Gatherer

	Lookups   *prometheus.CounterVec
	Durations *prometheus.HistogramVec
	Unknown   *prometheus.CounterVec
}

// NewMetrics registers the lookup collectors against reg, defaulting to
// the global registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	lookups, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "celestial_lookups_total",
		Help: "Body lookups by source and outcome.",
	}, []string{"source", "outcome"}), "celestial_lookups_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "celestial_lookup_duration_seconds",
		Help:    "Lookup latency including the source fetch.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
	}, []string{"source"}), "celestial_lookup_duration_seconds")
	if err != nil {
		return nil, err
	}

	unknown, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "celestial_unknown_quantities_total",
		Help: "Displayed quantities that rendered as Unknown.",
	}, []string{"quantity"}), "celestial_unknown_quantities_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:  gatherer,
		Lookups:   lookups,
		Durations: durations,
		Unknown:   unknown,
	}, nil
}

// ObserveLookup counts a finished lookup.
func (m *Metrics) ObserveLookup(source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if source == "" {
		source = "none"
	}
	m.Lookups.WithLabelValues(source, outcome).Inc()
	m.Durations.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveUnknown counts a quantity shown as Unknown.
func (m *Metrics) ObserveUnknown(key string) {
	if m == nil {
		return
	}
	m.Unknown.WithLabelValues(key).Inc()
}

// Handler exposes the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	gatherer := m.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
