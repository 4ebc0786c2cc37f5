package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveComparison("wra", 20*time.Millisecond)
	m.ObserveComparison("wra", 10*time.Millisecond)
	m.ObserveBaseline(true)
	m.ObserveBaseline(false)
	m.ObserveBaseline(false)
	m.ObserveGeocode(true)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Comparisons.WithLabelValues("wra")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.BaselineHits), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.BaselineMisses), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GeocodeLookups.WithLabelValues("found")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveComparison("wra", time.Second)
		m.ObserveBaseline(true)
		m.ObserveGeocode(false)
	})
}
