package catalog

import (
	"fmt"
	"regexp"
	"sort"

	"component-resolver/internal/diagnostic"
	"component-resolver/internal/match"
)

var nodeIDPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// Validate checks a document against the catalog schema. Errors make the
// catalog unusable; warnings are reported but do not block loading.
func Validate(doc *Document, providerName string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		res.AddError("document_is_nil", "catalog document is empty", providerName, "")
		return res
	}

	if doc.Provider != "" && doc.Provider != providerName {
		res.AddError("provider_mismatch",
			fmt.Sprintf("document declares provider %q", doc.Provider), providerName, "provider")
	}

	if len(doc.Modules) == 0 {
		res.AddError("empty_modules", "modules map is missing or empty", providerName, "modules")
	}

	if len(doc.Nodes) == 0 {
		res.AddError("empty_nodes", "nodes map is missing or empty", providerName, "nodes")
	}

	categories := make([]string, 0, len(doc.Modules))
	for category, modulePath := range doc.Modules {
		categories = append(categories, category)

		if modulePath == "" {
			res.AddError("empty_module_path", "module path is empty", providerName, "modules."+category)
		}
	}

	sort.Strings(categories)

	ids := make([]string, 0, len(doc.Nodes))
	for id := range doc.Nodes {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	seenNormalized := make(map[string]string, len(ids))

	for _, id := range ids {
		def := doc.Nodes[id]
		path := "nodes." + id

		if !nodeIDPattern.MatchString(id) {
			res.AddError("invalid_node_id", "node_id must be lower snake case", providerName, path)
		}

		if def.Category == "" {
			res.AddError("missing_category", "entry has no category", providerName, path+".category")
		} else if _, ok := doc.Modules[def.Category]; !ok {
			res.AddWarning("unknown_category",
				fmt.Sprintf("category %q is not declared in modules", def.Category),
				providerName, path+".category",
				match.CloseMatches(def.Category, categories, 1, match.DefaultSimilarityCutoff, match.RatioMatcher{})...)
		}

		if def.ClassName == "" {
			res.AddError("missing_class_name", "entry has no class_name", providerName, path+".class_name")
		}

		norm := match.NormalizeIdent(id)
		if other, ok := seenNormalized[norm]; ok {
			res.AddWarning("ambiguous_node_id",
				fmt.Sprintf("normalizes to the same form as %q", other), providerName, path)
		} else {
			seenNormalized[norm] = id
		}
	}

	return res
}
