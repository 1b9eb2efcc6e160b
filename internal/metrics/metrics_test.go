package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CacheAndUpstream(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.Upstream("rate", nil)
	m.Upstream("rate", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestTotal.WithLabelValues("rate", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestTotal.WithLabelValues("rate", "error")))
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
