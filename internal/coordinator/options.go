package coordinator

import (
	"component-resolver/internal/match"
	"component-resolver/internal/resolver"
)

// Options tunes a Coordinator. Start from DefaultOptions.
type Options struct {
	// Matcher scores string similarity everywhere a similarity is needed.
	Matcher match.Matcher
	// FuzzyThreshold is the minimum similarity for fuzzy and tier 4 matches.
	FuzzyThreshold float64
	// KeywordThreshold is the minimum keyword overlap score.
	KeywordThreshold float64
	// AlternativeThreshold is the minimum similarity of a ClassNotFound
	// alternative.
	AlternativeThreshold float64
	// SuggestionLimit caps Failure.Suggestions.
	SuggestionLimit int
	// AlternativeLimit caps Failure.Alternatives.
	AlternativeLimit int
	// ClassesPerCategory caps each entry of Failure.Available.
	ClassesPerCategory int
	// MaxScan caps the catalog entries scored per request.
	MaxScan int
	// MaxTermLength truncates longer node_ids before matching.
	MaxTermLength int
	// Concurrency bounds ResolveAll.
	Concurrency int
	// Remaps are evaluated before BuiltinRemaps.
	Remaps []RemapRule
	// DisableBuiltinRemaps drops BuiltinRemaps.
	DisableBuiltinRemaps bool
	// Patterns replaces resolver.DefaultPatterns when non-nil.
	Patterns []resolver.Pattern
}

// DefaultOptions returns the default tuning.
func DefaultOptions() Options {
	return Options{
		Matcher:              match.RatioMatcher{},
		FuzzyThreshold:       match.DefaultSimilarityCutoff,
		KeywordThreshold:     match.DefaultKeywordCutoff,
		AlternativeThreshold: match.DefaultKeywordCutoff,
		SuggestionLimit:      5,
		AlternativeLimit:     3,
		ClassesPerCategory:   5,
		MaxScan:              resolver.DefaultMaxScan,
		MaxTermLength:        128,
		Concurrency:          8,
	}
}

// withDefaults fills zero values from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()

	if o.Matcher == nil {
		o.Matcher = d.Matcher
	}

	if o.FuzzyThreshold <= 0 {
		o.FuzzyThreshold = d.FuzzyThreshold
	}

	if o.KeywordThreshold <= 0 {
		o.KeywordThreshold = d.KeywordThreshold
	}

	if o.AlternativeThreshold <= 0 {
		o.AlternativeThreshold = d.AlternativeThreshold
	}

	if o.SuggestionLimit <= 0 {
		o.SuggestionLimit = d.SuggestionLimit
	}

	if o.AlternativeLimit <= 0 {
		o.AlternativeLimit = d.AlternativeLimit
	}

	if o.ClassesPerCategory <= 0 {
		o.ClassesPerCategory = d.ClassesPerCategory
	}

	if o.MaxScan <= 0 {
		o.MaxScan = d.MaxScan
	}

	if o.MaxTermLength <= 0 {
		o.MaxTermLength = d.MaxTermLength
	}

	if o.Concurrency <= 0 {
		o.Concurrency = d.Concurrency
	}

	return o
}

func (o Options) remapRules() []RemapRule {
	rules := make([]RemapRule, 0, len(o.Remaps)+len(BuiltinRemaps))
	rules = append(rules, o.Remaps...)

	if !o.DisableBuiltinRemaps {
		rules = append(rules, BuiltinRemaps...)
	}

	return rules
}
