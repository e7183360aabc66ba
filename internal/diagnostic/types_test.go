package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	t.Run("empty diagnostics have no error", func(t *testing.T) {
		var d Diagnostics

		assert.False(t, d.HasErrors())
		assert.NoError(t, d.Err())
	})

	t.Run("errors are combined in order", func(t *testing.T) {
		var d Diagnostics
		d.AddError("missing_class_name", "entry has no class_name", "aws", "nodes.lambda")
		d.AddError("empty_modules", "modules map is empty", "gcp", "modules")

		require.Error(t, d.Err())
		assert.Equal(t,
			"[aws] nodes.lambda: [missing_class_name] entry has no class_name; [gcp] modules: [empty_modules] modules map is empty",
			d.Err().Error())
	})

	t.Run("warnings do not make diagnostics fail", func(t *testing.T) {
		var d Diagnostics
		d.AddWarning("unknown_category", "category not in modules", "aws", "nodes.x.category", "compute")

		assert.False(t, d.HasErrors())
		require.Len(t, d.Warnings, 1)
		assert.Equal(t, SeverityWarning, d.Warnings[0].Severity)
		assert.Contains(t, d.Warnings[0].String(), "did you mean: compute")
	})

	t.Run("merge appends both severities", func(t *testing.T) {
		var a, b Diagnostics
		a.AddWarning("w1", "first", "", "")
		b.AddError("e1", "second", "", "")
		b.AddWarning("w2", "third", "", "")

		a.Merge(b)

		assert.Len(t, a.Errors, 1)
		assert.Len(t, a.Warnings, 2)
	})
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
