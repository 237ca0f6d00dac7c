package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// UpstreamRequests counts calls to the vehicle backend.
	// outcome: success/failed, operation: fetch/command
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicled_upstream_requests_total",
			Help: "Total number of requests sent to the vehicle backend.",
		},
		[]string{"operation", "outcome"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vehicled_upstream_latency_seconds",
			Help:    "Latency of requests sent to the vehicle backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CacheLookups counts snapshot lookups. result: hit/miss
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicled_cache_lookups_total",
			Help: "Vehicle snapshot cache lookups.",
		},
		[]string{"result"},
	)

	// Commands counts executed vehicle commands by result code.
	Commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicled_commands_total",
			Help: "Vehicle commands handled, by command and result code.",
		},
		[]string{"command", "code"},
	)
)

func init() {
	prometheus.MustRegister(UpstreamRequests)
	prometheus.MustRegister(UpstreamLatency)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(Commands)
}

// ObserveUpstream records one backend call that started at start.
func ObserveUpstream(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failed"
	}
	UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	UpstreamLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
