package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"component-resolver/internal/provider"
)

const minimalCatalog = `
provider: aws
modules:
  compute: nodes/aws/compute
  network: nodes/aws/network
nodes:
  lambda:
    category: compute
    class_name: Lambda
    description: Serverless function compute
  vpc:
    category: network
    class_name: VPC
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(minimalCatalog), provider.AWS, "test")
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, provider.AWS, c.Provider())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"lambda", "vpc"}, c.AllNodeIDs())

	e, ok := c.Get("lambda")
	require.True(t, ok)
	assert.Equal(t, Entry{
		NodeID:      "lambda",
		Category:    "compute",
		ClassName:   "Lambda",
		Description: "Serverless function compute",
	}, e)

	assert.Equal(t, "nodes/aws/network", c.ModuleFor("network"))
	assert.Equal(t, "nodes/aws/network", c.ModuleForNode("vpc"))
	assert.Empty(t, c.ModuleFor("storage"))
	assert.Empty(t, c.Warnings())
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("modules: [unclosed"), provider.AWS, "broken.yaml")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrCatalogMalformed)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestParseSchemaErrors(t *testing.T) {
	doc := `
modules: {}
nodes:
  lambda:
    category: compute
`
	_, err := Parse([]byte(doc), provider.AWS, "test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogMalformed)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	require.NotNil(t, loadErr.Diagnostics)

	codes := make([]string, 0, len(loadErr.Diagnostics.Errors))
	for _, d := range loadErr.Diagnostics.Errors {
		codes = append(codes, d.Code)
	}

	assert.ElementsMatch(t, []string{"empty_modules", "missing_class_name"}, codes)
	assert.Contains(t, err.Error(), "nodes.lambda.class_name")
}

func TestParseUnknownCategoryIsWarning(t *testing.T) {
	doc := `
modules:
  compute: nodes/aws/compute
nodes:
  lambda:
    category: computes
    class_name: Lambda
`
	c, err := Parse([]byte(doc), provider.AWS, "test")
	require.NoError(t, err)

	warnings := c.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "unknown_category", warnings[0].Code)
	assert.Equal(t, []string{"compute"}, warnings[0].Suggestions)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aws.yaml"), []byte(minimalCatalog), 0o644))

	t.Run("reads provider document from directory", func(t *testing.T) {
		c, err := Dir(dir).Load(provider.AWS)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("missing document reports catalog missing", func(t *testing.T) {
		_, err := Dir(dir).Load(provider.GCP)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCatalogMissing)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("provider mismatch is rejected", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "aws.yaml"), provider.Azure)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider_mismatch")
	})
}

func TestEmbedded(t *testing.T) {
	for _, p := range provider.Supported() {
		t.Run(string(p), func(t *testing.T) {
			c, err := Embedded().Load(p)
			require.NoError(t, err)

			assert.Equal(t, p, c.Provider())
			assert.Greater(t, c.Len(), 20)
			assert.Empty(t, c.Warnings(), "built-in catalogs should load cleanly")

			for _, e := range c.Entries() {
				assert.NotEmpty(t, c.ModuleFor(e.Category), "entry %s has no module", e.NodeID)
			}
		})
	}
}
