package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestParseManifest(t *testing.T) {
	o, err := ParseManifest([]byte(`
modules:
  nodes/aws/storage:
    classes: [S3, EFS]
    exports: [S3Glacier]
`))
	require.NoError(t, err)

	classes, err := o.Discover("nodes/aws/storage")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"EFS", "S3"}, classes.UnsortedList())

	assert.True(t, o.HasExport("nodes/aws/storage", "S3Glacier"))
	assert.False(t, o.HasExport("nodes/aws/compute", "S3Glacier"))

	_, err = o.Discover("nodes/aws/compute")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestParseManifestErrors(t *testing.T) {
	_, err := ParseManifest([]byte("modules: ["))
	assert.Error(t, err)

	_, err = ParseManifest([]byte("modules: {}"))
	assert.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules:\n  m:\n    classes: [A]\n"), 0o644))

	o, err := LoadManifest(path)
	require.NoError(t, err)
	classes, err := o.Discover("m")
	require.NoError(t, err)
	assert.True(t, classes.Equal(sets.New("A")))

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuiltinOracle(t *testing.T) {
	o, err := BuiltinOracle()
	require.NoError(t, err)

	classes, err := o.Discover("nodes/aws/compute")
	require.NoError(t, err)
	assert.True(t, classes.Has("Lambda"))

	storage, err := o.Discover("nodes/aws/storage")
	require.NoError(t, err)
	assert.False(t, storage.Has("S3Glacier"))
	assert.True(t, o.HasExport("nodes/aws/storage", "S3Glacier"))

	// discovery results are copies
	classes.Insert("Injected")
	again, err := o.Discover("nodes/aws/compute")
	require.NoError(t, err)
	assert.False(t, again.Has("Injected"))
}
