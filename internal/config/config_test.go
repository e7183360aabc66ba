package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")

	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
	assert.NoError(t, conf.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  dir: /etc/catalogs
resolution:
  matcher: levenshtein
  suggestion_limit: 3
remaps:
  - name: legacy
    when: NodeID == "bucket"
    target: s3
log:
  level: debug
`), 0o644))
	t.Setenv(EnvPath, path)

	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/etc/catalogs", conf.Catalog.Dir)
	assert.Equal(t, "levenshtein", conf.Resolution.Matcher)
	assert.Equal(t, 3, conf.Resolution.SuggestionLimit)
	assert.Equal(t, 0.6, conf.Resolution.FuzzyThreshold, "unset fields keep defaults")
	assert.Equal(t, OracleManifest, conf.Toolkit.Oracle)
	assert.Equal(t, []RemapRule{{Name: "legacy", When: `NodeID == "bucket"`, Target: "s3"}}, conf.Remaps)
	assert.Equal(t, "debug", conf.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"bad yaml", "resolution: [", "failed to parse yaml config"},
		{"threshold above one", "resolution:\n  fuzzy_threshold: 1.5\n", "resolution.fuzzy_threshold"},
		{"negative threshold", "resolution:\n  keyword_threshold: -0.1\n", "resolution.keyword_threshold"},
		{"unknown matcher", "resolution:\n  matcher: jaro\n", "resolution.matcher"},
		{"zero limit", "resolution:\n  suggestion_limit: 0\n", "resolution.suggestion_limit"},
		{"unknown oracle", "toolkit:\n  oracle: reflection\n", "toolkit.oracle"},
		{"packages without root", "toolkit:\n  oracle: packages\n", "toolkit.root"},
		{"incomplete remap", "remaps:\n  - when: 'true'\n", "remaps[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
