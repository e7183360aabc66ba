package catalog

import (
	"maps"
	"slices"
	"sort"

	"component-resolver/internal/diagnostic"
	"component-resolver/internal/provider"
)

// Catalog is an immutable, validated snapshot of one provider's catalog.
// It is safe for concurrent use.
type Catalog struct {
	provider provider.Provider
	modules  map[string]string
	entries  map[string]Entry
	ids      []string
	byClass  map[classKey]string
	warnings []diagnostic.Diagnostic
}

type classKey struct {
	module string
	class  string
}

func newCatalog(p provider.Provider, doc *Document, warnings []diagnostic.Diagnostic) *Catalog {
	c := &Catalog{
		provider: p,
		modules:  make(map[string]string, len(doc.Modules)),
		entries:  make(map[string]Entry, len(doc.Nodes)),
		ids:      make([]string, 0, len(doc.Nodes)),
		byClass:  make(map[classKey]string, len(doc.Nodes)),
		warnings: warnings,
	}

	for category, modulePath := range doc.Modules {
		c.modules[category] = modulePath
	}

	for id, def := range doc.Nodes {
		c.entries[id] = Entry{
			NodeID:      id,
			Category:    def.Category,
			ClassName:   def.ClassName,
			Description: def.Description,
		}
		c.ids = append(c.ids, id)
	}

	sort.Strings(c.ids)

	// First node_id in sorted order owns a (module, class) pair.
	for _, id := range c.ids {
		e := c.entries[id]
		key := classKey{module: c.modules[e.Category], class: e.ClassName}

		if _, ok := c.byClass[key]; !ok {
			c.byClass[key] = id
		}
	}

	return c
}

// Provider returns the provider this catalog describes.
func (c *Catalog) Provider() provider.Provider { return c.provider }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.ids) }

// Get returns the entry declared for nodeID.
func (c *Catalog) Get(nodeID string) (Entry, bool) {
	e, ok := c.entries[nodeID]
	return e, ok
}

// AllNodeIDs returns every node_id in sorted order.
func (c *Catalog) AllNodeIDs() []string {
	return slices.Clone(c.ids)
}

// Entries returns every entry sorted by node_id.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.entries[id])
	}

	return out
}

// Modules returns a copy of the category to module path map.
func (c *Catalog) Modules() map[string]string {
	return maps.Clone(c.modules)
}

// ModuleFor returns the module path of category, or "" when undeclared.
func (c *Catalog) ModuleFor(category string) string {
	return c.modules[category]
}

// ModuleForNode returns the module path of nodeID's category, or "".
func (c *Catalog) ModuleForNode(nodeID string) string {
	e, ok := c.entries[nodeID]
	if !ok {
		return ""
	}

	return c.modules[e.Category]
}

// Categories returns the declared categories in sorted order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.modules))
	for category := range c.modules {
		out = append(out, category)
	}

	sort.Strings(out)

	return out
}

// ModulePaths returns the distinct module paths in sorted order.
func (c *Catalog) ModulePaths() []string {
	seen := make(map[string]struct{}, len(c.modules))
	out := make([]string, 0, len(c.modules))

	for _, modulePath := range c.modules {
		if _, ok := seen[modulePath]; ok {
			continue
		}

		seen[modulePath] = struct{}{}
		out = append(out, modulePath)
	}

	sort.Strings(out)

	return out
}

// ByClass returns the entry whose declared class is className in modulePath.
func (c *Catalog) ByClass(modulePath, className string) (Entry, bool) {
	id, ok := c.byClass[classKey{module: modulePath, class: className}]
	if !ok {
		return Entry{}, false
	}

	return c.entries[id], true
}

// Warnings returns the non-fatal diagnostics recorded at load time.
func (c *Catalog) Warnings() []diagnostic.Diagnostic {
	return slices.Clone(c.warnings)
}
