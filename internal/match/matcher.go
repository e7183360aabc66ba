package match

import (
	"fmt"
	"math"
)

// Matcher scores the similarity of two already-normalized strings in [0, 1].
type Matcher interface {
	Name() string
	Score(a, b string) float64
}

// Matcher names accepted by ParseMatcher.
const (
	MatcherRatio       = "ratio"
	MatcherLevenshtein = "levenshtein"
)

// Default thresholds used across resolution.
const (
	// DefaultSimilarityCutoff is the minimum similarity for a fuzzy match.
	DefaultSimilarityCutoff = 0.6
	// DefaultKeywordCutoff is the minimum keyword overlap score.
	DefaultKeywordCutoff = 0.4
)

// scoreEpsilon absorbs float rounding when comparing against a cutoff, so a
// score computed as exactly 0.6 is not rejected as 0.5999999.
const scoreEpsilon = 1e-9

// RatioMatcher scores with the difflib sequence matcher ratio.
type RatioMatcher struct{}

// Name implements Matcher.
func (RatioMatcher) Name() string { return MatcherRatio }

// Score implements Matcher.
func (RatioMatcher) Score(a, b string) float64 { return Ratio(a, b) }

// LevenshteinMatcher scores with normalized Levenshtein similarity.
type LevenshteinMatcher struct{}

// Name implements Matcher.
func (LevenshteinMatcher) Name() string { return MatcherLevenshtein }

// Score implements Matcher.
func (LevenshteinMatcher) Score(a, b string) float64 { return LevenshteinNormalized(a, b) }

// ParseMatcher returns the matcher registered under name. An empty name
// selects the ratio matcher.
func ParseMatcher(name string) (Matcher, error) {
	switch name {
	case "", MatcherRatio:
		return RatioMatcher{}, nil
	case MatcherLevenshtein:
		return LevenshteinMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q (want %s or %s)", name, MatcherRatio, MatcherLevenshtein)
	}
}

// MeetsCutoff reports whether score reaches cutoff, tolerating float noise.
func MeetsCutoff(score, cutoff float64) bool {
	return score >= cutoff-scoreEpsilon
}

// Round trims a score to four decimals for stable reporting.
func Round(score float64) float64 {
	return math.Round(score*10000) / 10000
}
