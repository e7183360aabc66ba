// Package metrics holds the prometheus collectors for resolution and toolkit
// discovery. Collectors are registered on Registry, which callers may expose
// or gather as they see fit.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the registry every collector of this package is registered on.
var Registry = prometheus.NewRegistry()

var (
	resolutionsTotal    *prometheus.CounterVec
	discoveryDuration   *prometheus.HistogramVec
	snapshotBuildsTotal *prometheus.CounterVec
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

func init() {
	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "component_resolutions_total",
			Help: "Total number of component resolutions by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	discoveryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toolkit_module_discovery_duration_seconds",
			Help:    "Duration of toolkit module introspection in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
		},
		[]string{"provider", "outcome"},
	)

	snapshotBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_snapshot_builds_total",
			Help: "Total number of provider snapshot builds",
		},
		[]string{"provider", "outcome"},
	)

	Registry.MustRegister(
		resolutionsTotal,
		discoveryDuration,
		snapshotBuildsTotal,
	)
}

// ObserveResolution counts one resolution. outcome is the strategy used on
// success or the failure kind otherwise.
func ObserveResolution(provider, outcome string) {
	resolutionsTotal.WithLabelValues(provider, outcome).Inc()
}

// ObserveDiscovery records the duration of one module introspection.
func ObserveDiscovery(provider, outcome string, d time.Duration) {
	discoveryDuration.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

// ObserveSnapshotBuild counts one provider snapshot build.
func ObserveSnapshotBuild(provider, outcome string) {
	snapshotBuildsTotal.WithLabelValues(provider, outcome).Inc()
}

// ResolutionCount returns the current resolution count for a label pair.
// It is meant for tests and diagnostics.
func ResolutionCount(provider, outcome string) prometheus.Counter {
	return resolutionsTotal.WithLabelValues(provider, outcome)
}

// SnapshotBuildCount returns the snapshot build counter for a label pair.
func SnapshotBuildCount(provider, outcome string) prometheus.Counter {
	return snapshotBuildsTotal.WithLabelValues(provider, outcome)
}
