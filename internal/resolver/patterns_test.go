package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"component-resolver/internal/catalog"
	"component-resolver/internal/provider"
)

func TestDefaultPatternTargetsExist(t *testing.T) {
	catalogs := make(map[provider.Provider]*catalog.Catalog)

	for _, p := range provider.Supported() {
		c, err := catalog.Embedded().Load(p)
		require.NoError(t, err)

		catalogs[p] = c
	}

	check := func(pattern string, ts Targets) {
		for p, id := range ts {
			_, ok := catalogs[p].Get(id)
			assert.True(t, ok, "pattern %s targets unknown %s node %q", pattern, p, id)
		}
	}

	for _, p := range DefaultPatterns {
		require.NotEmpty(t, p.Triggers, p.Name)
		require.NotEmpty(t, p.Default, p.Name)

		check(p.Name, p.Default)

		for _, h := range p.Hints {
			check(p.Name, h.Targets)
		}
	}
}

func TestTargetsSkipsEmpty(t *testing.T) {
	ts := targets("neptune", "", "bigtable")

	assert.Equal(t, Targets{provider.AWS: "neptune", provider.GCP: "bigtable"}, ts)
}
