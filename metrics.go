package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	rpcCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagsync_rpc_requests_total",
			Help: "Number of JSON-RPC requests issued",
		},
		[]string{"method"},
	)
	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tagsync_rpc_request_duration_seconds",
			Help:    "Duration of JSON-RPC requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	hostsUpdatedCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tagsync_hosts_updated_total",
			Help: "Total number of hosts whose tags were updated",
		},
	)
	hostUpdateFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tagsync_host_updates_failed_total",
			Help: "Total number of host updates that failed",
		},
	)
	rowsSkippedCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tagsync_rows_skipped_total",
			Help: "Total number of CSV rows skipped",
		},
	)
)

func registerMetrics() {
	prometheus.MustRegister(rpcCount)
	prometheus.MustRegister(rpcDuration)
	prometheus.MustRegister(hostsUpdatedCount)
	prometheus.MustRegister(hostUpdateFailures)
	prometheus.MustRegister(rowsSkippedCount)
}

// startMetricsServer exposes /metrics for runs supervised by a scraper.
// Off unless metrics_listen_addr is configured.
func startMetricsServer(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Info().Msgf("Metrics listener started on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error().Err(err).Msg("Metrics listener failed")
		}
	}()
}
