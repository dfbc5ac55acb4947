// Package metrics exposes Prometheus collectors for the connection
// lifecycle. Collectors register on the default registry; the demo
// application serves them on /metrics via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionsTotal counts accepted connections.
	ConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneshot_connections_total",
		Help: "Connections accepted by the server.",
	})

	// InFlight tracks connections currently being served.
	InFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oneshot_connections_in_flight",
		Help: "Connections currently inside a request/response cycle.",
	})

	// CycleErrors counts failed cycles by error kind.
	CycleErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oneshot_cycle_errors_total",
		Help: "Request/response cycles that ended in an error, by kind.",
	}, []string{"kind"})

	// CycleDuration observes full cycle durations, accept to close.
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oneshot_cycle_duration_seconds",
		Help:    "Duration of a full request/response cycle.",
		Buckets: prometheus.DefBuckets,
	})

	// ResponseBytes counts bytes written to peers.
	ResponseBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneshot_response_bytes_total",
		Help: "Bytes written to peers, status lines and headers included.",
	})

	// RateLimited counts connections dropped by the accept limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneshot_rate_limited_total",
		Help: "Connections dropped by the per-IP accept limiter.",
	})
)
