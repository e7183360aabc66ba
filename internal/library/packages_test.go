package library

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeToolkit lays out a small Go module shaped like a rendering toolkit.
func writeToolkit(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	dir := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/toolkit\n\ngo 1.22\n",
		"nodes/aws/compute/compute.go": `package compute

import "example.com/toolkit/nodes/base"

type Lambda struct{ base.Node }

type EC2 struct{ base.Node }

type helper struct{}

// Node is re-exported from the base package.
type Node = base.Node

// Duration is an alias to a type outside the toolkit.
type Duration = int64

var Default = EC2{}

func New() helper { return helper{} }
`,
		"nodes/base/base.go": `package base

type Node struct{ Label string }
`,
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func TestPackagesOracle(t *testing.T) {
	dir := writeToolkit(t)
	o := NewPackagesOracle("example.com/toolkit/", dir)

	classes, err := o.Discover("nodes/aws/compute")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"EC2", "Lambda", "Node"}, classes.UnsortedList())

	assert.True(t, o.HasExport("nodes/aws/compute", "Default"))
	assert.True(t, o.HasExport("nodes/aws/compute", "Duration"))
	assert.False(t, o.HasExport("nodes/aws/compute", "helper"))
	assert.False(t, o.HasExport("nodes/aws/compute", "Missing"))

	_, err = o.Discover("nodes/aws/missing")
	assert.Error(t, err)
	assert.False(t, o.HasExport("nodes/aws/missing", "Lambda"))
}
