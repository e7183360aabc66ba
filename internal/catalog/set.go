package catalog

import (
	"slices"

	"component-resolver/internal/provider"
)

// Set groups the catalogs of several providers.
type Set struct {
	catalogs map[provider.Provider]*Catalog
}

// NewSet builds a Set from already loaded catalogs.
func NewSet(catalogs ...*Catalog) *Set {
	s := &Set{catalogs: make(map[provider.Provider]*Catalog, len(catalogs))}
	for _, c := range catalogs {
		s.catalogs[c.Provider()] = c
	}

	return s
}

// Providers returns the providers present in the set, sorted.
func (s *Set) Providers() []provider.Provider {
	out := make([]provider.Provider, 0, len(s.catalogs))
	for p := range s.catalogs {
		out = append(out, p)
	}

	slices.Sort(out)

	return out
}

// Catalog returns the catalog of p.
func (s *Set) Catalog(p provider.Provider) (*Catalog, bool) {
	c, ok := s.catalogs[p]
	return c, ok
}

// Get returns the entry for nodeID under provider p.
func (s *Set) Get(p provider.Provider, nodeID string) (Entry, bool) {
	c, ok := s.catalogs[p]
	if !ok {
		return Entry{}, false
	}

	return c.Get(nodeID)
}

// AllNodeIDs returns the sorted node ids of provider p.
func (s *Set) AllNodeIDs(p provider.Provider) []string {
	c, ok := s.catalogs[p]
	if !ok {
		return nil
	}

	return c.AllNodeIDs()
}

// ModuleFor returns the module path of category under provider p.
func (s *Set) ModuleFor(p provider.Provider, category string) string {
	c, ok := s.catalogs[p]
	if !ok {
		return ""
	}

	return c.ModuleFor(category)
}
