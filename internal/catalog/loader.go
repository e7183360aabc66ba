package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"component-resolver/internal/provider"
	"component-resolver/pkg/logger"
)

//go:embed data/*.yaml
var builtin embed.FS

// Loader produces the catalog of a single provider.
type Loader interface {
	Load(p provider.Provider) (*Catalog, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(p provider.Provider) (*Catalog, error)

// Load implements Loader.
func (f LoaderFunc) Load(p provider.Provider) (*Catalog, error) { return f(p) }

// Embedded returns a Loader over the built-in catalogs.
func Embedded() Loader {
	return LoaderFunc(func(p provider.Provider) (*Catalog, error) {
		source := "builtin:" + string(p)

		data, err := builtin.ReadFile("data/" + string(p) + ".yaml")
		if err != nil {
			return nil, readError(p, source, err)
		}

		return Parse(data, p, source)
	})
}

// Dir returns a Loader reading <dir>/<provider>.yaml.
func Dir(dir string) Loader {
	return LoaderFunc(func(p provider.Provider) (*Catalog, error) {
		return LoadFile(filepath.Join(dir, string(p)+".yaml"), p)
	})
}

// LoadFile loads and validates the catalog document at path.
func LoadFile(path string, p provider.Provider) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(p, path, err)
	}

	return Parse(data, p, path)
}

// Parse decodes and validates a YAML catalog document. Warnings are logged
// and kept on the returned Catalog.
func Parse(data []byte, p provider.Provider, source string) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{
			Provider: p,
			Source:   source,
			Kind:     ErrCatalogMalformed,
			Cause:    fmt.Errorf("failed to parse catalog YAML: %w", err),
		}
	}

	diags := Validate(&doc, string(p))
	if diags.HasErrors() {
		return nil, &LoadError{
			Provider:    p,
			Source:      source,
			Kind:        ErrCatalogMalformed,
			Diagnostics: diags,
		}
	}

	for _, w := range diags.Warnings {
		logger.Warn("catalog warning", "provider", p, "source", source, "detail", w.String())
	}

	return newCatalog(p, &doc, diags.Warnings), nil
}

func readError(p provider.Provider, source string, err error) error {
	kind := ErrCatalogMalformed
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrCatalogMissing
	}

	return &LoadError{Provider: p, Source: source, Kind: kind, Cause: err}
}
