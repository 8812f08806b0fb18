package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		apiCallsTotal,
		apiCallLatencyMs,
	)
}

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_api_calls_total",
			Help: "Upstream gateway API calls per operation and outcome.",
		},
		[]string{"operation", "outcome"}, // outcome: ok|transport_error|api_error
	)

	apiCallLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_api_call_latency_ms",
			Help:    "Upstream gateway call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"operation"},
	)
)

func ObserveAPICall(operation, outcome string, latencyMs int) {
	apiCallsTotal.WithLabelValues(norm(operation), norm(outcome)).Inc()
	apiCallLatencyMs.WithLabelValues(norm(operation)).Observe(float64(latencyMs))
}
