// Package config loads the resolver configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"component-resolver/internal/match"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "COMPONENT_RESOLVER_CONFIG"

// Oracle kinds.
const (
	OracleManifest = "manifest"
	OraclePackages = "packages"
)

// Config represents the root configuration structure
type Config struct {
	Catalog    CatalogConfig    `yaml:"catalog"`
	Toolkit    ToolkitConfig    `yaml:"toolkit"`
	Resolution ResolutionConfig `yaml:"resolution"`
	Remaps     []RemapRule      `yaml:"remaps"`
	Log        LogConfig        `yaml:"log"`
}

// CatalogConfig selects where catalog documents are read from. An empty Dir
// selects the built-in catalogs.
type CatalogConfig struct {
	Dir string `yaml:"dir"`
}

// ToolkitConfig selects how toolkit availability is discovered.
type ToolkitConfig struct {
	// Oracle is "manifest" or "packages".
	Oracle string `yaml:"oracle"`
	// Manifest is a toolkit manifest path; empty selects the built-in snapshot.
	Manifest string `yaml:"manifest"`
	// Root is the import path prefix of a Go toolkit ("packages" oracle).
	Root string `yaml:"root"`
	// Dir is the directory Go packages are loaded from ("packages" oracle).
	Dir string `yaml:"dir"`
}

// ResolutionConfig tunes matching.
type ResolutionConfig struct {
	Matcher            string  `yaml:"matcher"`
	FuzzyThreshold     float64 `yaml:"fuzzy_threshold"`
	KeywordThreshold   float64 `yaml:"keyword_threshold"`
	SuggestionLimit    int     `yaml:"suggestion_limit"`
	ClassesPerCategory int     `yaml:"classes_per_category"`
	MaxScan            int     `yaml:"max_scan"`
	MaxTermLength      int     `yaml:"max_term_length"`
}

// RemapRule rewrites a node_id before resolution when When evaluates to true.
type RemapRule struct {
	Name   string `yaml:"name"`
	When   string `yaml:"when"`
	Target string `yaml:"target"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Toolkit: ToolkitConfig{Oracle: OracleManifest},
		Resolution: ResolutionConfig{
			Matcher:            match.MatcherRatio,
			FuzzyThreshold:     match.DefaultSimilarityCutoff,
			KeywordThreshold:   match.DefaultKeywordCutoff,
			SuggestionLimit:    5,
			ClassesPerCategory: 5,
			MaxScan:            5000,
			MaxTermLength:      128,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads the configuration at path, or at $COMPONENT_RESOLVER_CONFIG when
// path is empty. With neither set the defaults are returned. Fields absent
// from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}

	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML configuration over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	conf := Default()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed to parse yaml config: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if _, err := match.ParseMatcher(c.Resolution.Matcher); err != nil {
		errs = append(errs, fmt.Errorf("resolution.matcher: %w", err))
	}

	for name, v := range map[string]float64{
		"resolution.fuzzy_threshold":   c.Resolution.FuzzyThreshold,
		"resolution.keyword_threshold": c.Resolution.KeywordThreshold,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s: %v is outside [0, 1]", name, v))
		}
	}

	for name, v := range map[string]int{
		"resolution.suggestion_limit":     c.Resolution.SuggestionLimit,
		"resolution.classes_per_category": c.Resolution.ClassesPerCategory,
		"resolution.max_scan":             c.Resolution.MaxScan,
		"resolution.max_term_length":      c.Resolution.MaxTermLength,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %d", name, v))
		}
	}

	switch c.Toolkit.Oracle {
	case "", OracleManifest:
	case OraclePackages:
		if c.Toolkit.Root == "" {
			errs = append(errs, errors.New("toolkit.root: required by the packages oracle"))
		}
	default:
		errs = append(errs, fmt.Errorf("toolkit.oracle: unknown oracle %q (want %s or %s)",
			c.Toolkit.Oracle, OracleManifest, OraclePackages))
	}

	for i, r := range c.Remaps {
		if r.When == "" || r.Target == "" {
			errs = append(errs, fmt.Errorf("remaps[%d]: when and target are required", i))
		}
	}

	return errors.Join(errs...)
}
