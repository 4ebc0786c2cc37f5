// Package metrics exposes Prometheus counters for comparison runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "surveyloom"

// Metrics holds the engine's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Comparisons    *prometheus.CounterVec
	Duration       *prometheus.HistogramVec
	BaselineHits   prometheus.Counter
	BaselineMisses prometheus.Counter
	GeocodeLookups *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Comparisons: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Comparisons computed, by campaign.",
		}, []string{"campaign"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "comparison_duration_seconds",
			Help:      "Time to compute one campaign comparison.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"campaign"}),
		BaselineHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ngram_baseline_hits_total",
			Help:      "N-gram baselines served from the store.",
		}),
		BaselineMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ngram_baseline_misses_total",
			Help:      "N-gram baselines computed and stored.",
		}),
		GeocodeLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_lookups_total",
			Help:      "Geocoder lookups, by result.",
		}, []string{"result"}),
	}
}

// ObserveComparison records one finished comparison.
func (m *Metrics) ObserveComparison(campaign string, d time.Duration) {
	if m == nil {
		return
	}
	m.Comparisons.WithLabelValues(campaign).Inc()
	m.Duration.WithLabelValues(campaign).Observe(d.Seconds())
}

// ObserveBaseline records a baseline store hit or miss.
func (m *Metrics) ObserveBaseline(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.BaselineHits.Inc()
	} else {
		m.BaselineMisses.Inc()
	}
}

// ObserveGeocode records a geocoder lookup.
func (m *Metrics) ObserveGeocode(found bool) {
	if m == nil {
		return
	}
	result := "miss"
	if found {
		result = "found"
	}
	m.GeocodeLookups.WithLabelValues(result).Inc()
}
