package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveResolution(t *testing.T) {
	before := testutil.ToFloat64(ResolutionCount("aws", "metrics_test"))

	ObserveResolution("aws", "metrics_test")
	ObserveResolution("aws", "metrics_test")

	assert.Equal(t, before+2, testutil.ToFloat64(ResolutionCount("aws", "metrics_test")))
}

func TestObserveSnapshotBuild(t *testing.T) {
	before := testutil.ToFloat64(SnapshotBuildCount("gcp", OutcomeError))

	ObserveSnapshotBuild("gcp", OutcomeError)

	assert.Equal(t, before+1, testutil.ToFloat64(SnapshotBuildCount("gcp", OutcomeError)))
}

func TestObserveDiscovery(t *testing.T) {
	ObserveDiscovery("azure", OutcomeSuccess, 3*time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(discoveryDuration), 1)
}

func TestRegistryGathers(t *testing.T) {
	ObserveResolution("aws", OutcomeSuccess)

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}

	assert.Contains(t, names, "component_resolutions_total")
}
