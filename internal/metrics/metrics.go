package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RateRequestsTotal       prometheus.Counter
	ConversionRequestsTotal prometheus.Counter
	CurrencyRequestsTotal   prometheus.Counter

	CacheLookupsTotal    *prometheus.CounterVec
	UpstreamRequestTotal *prometheus.CounterVec
}

// NewMetrics registers every collector with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RateRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_requests_total",
				Help: "Total number of exchange rate requests",
			},
		),

		ConversionRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of currency conversion requests",
			},
		),

		CurrencyRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "currency_requests_total",
				Help: "Total number of currency directory requests",
			},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Rate history cache lookups by result",
			},
			[]string{"result"},
		),

		UpstreamRequestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Requests sent to the upstream rate API by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
	}
}

func (m *Metrics) CacheHit() {
	m.CacheLookupsTotal.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	m.CacheLookupsTotal.WithLabelValues("miss").Inc()
}

func (m *Metrics) Upstream(endpoint string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequestTotal.WithLabelValues(endpoint, outcome).Inc()
}
