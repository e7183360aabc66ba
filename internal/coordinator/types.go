package coordinator

import (
	"component-resolver/internal/provider"
	"component-resolver/internal/resolver"
)

// Strategy names how a successful resolution was obtained.
type Strategy string

const (
	// StrategyLibraryDirect means the toolkit index located the class from the
	// input term, or from the term the fuzzy resolver produced.
	StrategyLibraryDirect Strategy = "library_direct"
	// StrategyCatalogValidated means the catalog declared the class and the
	// toolkit index confirmed it.
	StrategyCatalogValidated Strategy = "catalog_validated"
	// StrategyCatalogDirectImport means the catalog declared the class and the
	// module exposes it only by direct access.
	StrategyCatalogDirectImport Strategy = "catalog_direct_import"
)

// Steps recorded in Failure.AttemptedStrategies.
const (
	stepRemap            = "remap"
	stepLibraryDirect    = "library_direct"
	stepFuzzyResolver    = "fuzzy_resolver"
	stepLibraryRetry     = "library_direct_retry"
	stepCatalogValidated = "catalog_validated"
	stepCatalogDirect    = "catalog_direct_import"
)

// Request is a component to resolve. It is never modified.
type Request struct {
	NodeID      string            `json:"node_id" yaml:"node_id"`
	DisplayName string            `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Provider    provider.Provider `json:"provider" yaml:"provider"`
	Context     map[string]string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Resolution is a successfully resolved component.
type Resolution struct {
	Provider    provider.Provider `json:"provider" yaml:"provider"`
	RequestedID string            `json:"requested_id" yaml:"requested_id"`
	NodeID      string            `json:"node_id" yaml:"node_id"`
	ModulePath  string            `json:"module_path" yaml:"module_path"`
	ClassName   string            `json:"class_name" yaml:"class_name"`
	Strategy    Strategy          `json:"strategy" yaml:"strategy"`
	// MatchedBy names the disambiguation step that rewrote the term, if any.
	MatchedBy resolver.Strategy `json:"matched_by,omitempty" yaml:"matched_by,omitempty"`
	Score     float64           `json:"score" yaml:"score"`
}

// Suggestion sources.
const (
	SourceCatalog = "catalog"
	SourceLibrary = "library"
)

// Suggestion is a ranked candidate attached to a NoMatch failure.
type Suggestion struct {
	NodeID      string  `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	ClassName   string  `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	ModulePath  string  `json:"module_path,omitempty" yaml:"module_path,omitempty"`
	Score       float64 `json:"score" yaml:"score"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string  `json:"source" yaml:"source"`
}

// CategoryClasses lists the classes available for one catalog category.
type CategoryClasses struct {
	Category   string   `json:"category" yaml:"category"`
	ModulePath string   `json:"module_path" yaml:"module_path"`
	Classes    []string `json:"classes" yaml:"classes"`
	// Total is the number of classes before capping.
	Total int `json:"total" yaml:"total"`
}

// Result pairs a request with its outcome in ResolveAll.
type Result struct {
	Request    Request     `json:"request" yaml:"request"`
	Resolution *Resolution `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Err        error       `json:"-" yaml:"-"`
}
