// Package metrics provides Prometheus metrics for vlantrunk invocations.
//
// The CLI is short-lived, so nothing is served over HTTP. When asked to, the
// registry is written once at exit in the text exposition format, ready for
// the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry is the global Prometheus registry for all metrics.
	Registry = prometheus.NewRegistry()

	// initialized tracks whether metrics have been initialized.
	initialized = false
)

var (
	// APIRequestsTotal counts provider API requests by method, operation, and status.
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vlantrunk_api_requests_total",
			Help: "Total number of provider API requests",
		},
		[]string{"method", "operation", "status"},
	)

	// APIRequestDuration measures provider API request duration in seconds.
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "vlantrunk_api_request_duration_seconds",
			Help: "Provider API request duration in seconds",
			// Account-wide hardware listings with deep object masks can take tens of seconds.
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	// ResolutionsTotal counts interface identifier resolutions by form and result.
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vlantrunk_resolutions_total",
			Help: "Total number of interface identifier resolutions",
		},
		[]string{"kind", "result"},
	)

	// TrunkMutationsTotal counts trunk add/clear calls by result.
	TrunkMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vlantrunk_trunk_mutations_total",
			Help: "Total number of VLAN trunk mutations",
		},
		[]string{"operation", "result"},
	)

	// LastRunTimestamp records when the invocation finished, in unix seconds.
	LastRunTimestamp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vlantrunk_last_run_timestamp_seconds",
			Help: "Unix time the last invocation of each command finished",
		},
		[]string{"command", "result"},
	)
)

// Init registers all collectors with Registry. Safe to call more than once.
func Init() error {
	if initialized {
		return nil
	}

	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		ResolutionsTotal,
		TrunkMutationsTotal,
		LastRunTimestamp,
	}

	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}

	initialized = true
	return nil
}

// ObserveAPIRequest records one completed provider request.
// A zero status means the request failed before a response arrived.
func ObserveAPIRequest(method, operation string, status int, duration time.Duration) {
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	APIRequestsTotal.WithLabelValues(method, operation, statusLabel).Inc()
	APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveResolution records one identifier resolution.
func ObserveResolution(kind string, err error) {
	ResolutionsTotal.WithLabelValues(kind, resultLabel(err)).Inc()
}

// ObserveTrunkMutation records one trunk add or clear call.
func ObserveTrunkMutation(operation string, err error) {
	TrunkMutationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

// MarkRun sets the last-run timestamp for command.
func MarkRun(command string, err error, at time.Time) {
	LastRunTimestamp.WithLabelValues(command, resultLabel(err)).Set(float64(at.Unix()))
}

// WriteTextfile writes the registry to path in the text exposition format.
// The file is written to a temporary name and renamed into place.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
