package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"component-resolver/internal/provider"
)

func TestCatalogAccessors(t *testing.T) {
	c, err := Embedded().Load(provider.AWS)
	require.NoError(t, err)

	t.Run("all node ids are sorted copies", func(t *testing.T) {
		ids := c.AllNodeIDs()
		assert.IsNonDecreasing(t, ids)

		ids[0] = "mutated"
		assert.NotEqual(t, "mutated", c.AllNodeIDs()[0])
	})

	t.Run("module paths are distinct and sorted", func(t *testing.T) {
		paths := c.ModulePaths()
		assert.Contains(t, paths, "nodes/aws/network")
		assert.IsIncreasing(t, paths)
	})

	t.Run("reverse lookup by class", func(t *testing.T) {
		e, ok := c.ByClass("nodes/aws/network", "APIGateway")
		require.True(t, ok)
		assert.Equal(t, "api_gateway", e.NodeID)

		_, ok = c.ByClass("nodes/aws/compute", "APIGateway")
		assert.False(t, ok)
	})
}

func TestSet(t *testing.T) {
	var loaded []*Catalog

	for _, p := range []provider.Provider{provider.GCP, provider.AWS, provider.Azure} {
		c, err := Embedded().Load(p)
		require.NoError(t, err)

		loaded = append(loaded, c)
	}

	set := NewSet(loaded...)
	assert.Equal(t, []provider.Provider{provider.AWS, provider.Azure, provider.GCP}, set.Providers())

	e, ok := set.Get(provider.AWS, "public_subnet")
	require.True(t, ok)
	assert.Equal(t, "PublicSubnet", e.ClassName)

	// public_subnet exists only in the aws catalog
	_, ok = set.Get(provider.GCP, "public_subnet")
	assert.False(t, ok)

	assert.Equal(t, "nodes/gcp/compute", set.ModuleFor(provider.GCP, "compute"))
	assert.Contains(t, set.AllNodeIDs(provider.Azure), "vnet")

	empty := NewSet()
	assert.Empty(t, empty.Providers())
	assert.Nil(t, empty.AllNodeIDs(provider.AWS))
	assert.Empty(t, empty.ModuleFor(provider.AWS, "compute"))

	_, ok = empty.Catalog(provider.AWS)
	assert.False(t, ok)
}
