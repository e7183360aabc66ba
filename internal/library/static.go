package library

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/sets"
)

//go:embed data/toolkit.yaml
var builtinManifest embed.FS

// Manifest is a snapshot of the classes a toolkit installation exposes.
type Manifest struct {
	Modules map[string]ManifestModule `yaml:"modules"`
}

// ManifestModule lists what one module exposes. Exports are names reachable
// by direct access that discovery does not report.
type ManifestModule struct {
	Classes []string `yaml:"classes"`
	Exports []string `yaml:"exports,omitempty"`
}

type staticModule struct {
	classes sets.Set[string]
	exports sets.Set[string]
}

// StaticOracle answers discovery from a manifest. It is immutable and safe
// for concurrent use.
type StaticOracle struct {
	modules map[string]staticModule
}

// NewStaticOracle builds an oracle from m.
func NewStaticOracle(m Manifest) *StaticOracle {
	o := &StaticOracle{modules: make(map[string]staticModule, len(m.Modules))}
	for path, mod := range m.Modules {
		o.modules[path] = staticModule{
			classes: sets.New(mod.Classes...),
			exports: sets.New(mod.Exports...),
		}
	}

	return o
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*StaticOracle, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse toolkit manifest: %w", err)
	}

	if len(m.Modules) == 0 {
		return nil, fmt.Errorf("toolkit manifest declares no modules")
	}

	return NewStaticOracle(m), nil
}

// LoadManifest reads and decodes the manifest at path.
func LoadManifest(path string) (*StaticOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read toolkit manifest: %w", err)
	}

	o, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return o, nil
}

// BuiltinOracle returns an oracle over the embedded toolkit snapshot.
func BuiltinOracle() (*StaticOracle, error) {
	data, err := builtinManifest.ReadFile("data/toolkit.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read builtin toolkit manifest: %w", err)
	}

	return ParseManifest(data)
}

// Discover implements Oracle.
func (o *StaticOracle) Discover(modulePath string) (sets.Set[string], error) {
	mod, ok := o.modules[modulePath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, modulePath)
	}

	return mod.classes.Clone(), nil
}

// HasExport implements DirectLookup.
func (o *StaticOracle) HasExport(modulePath, name string) bool {
	mod, ok := o.modules[modulePath]
	if !ok {
		return false
	}

	return mod.classes.Has(name) || mod.exports.Has(name)
}
