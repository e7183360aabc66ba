// Package resolver maps a loosely specified component term onto a catalog
// node_id.
//
// Resolve runs a fixed chain and stops at the first step that answers:
// context patterns, exact or normalized catalog match, fuzzy similarity and
// keyword overlap. All scoring is pure; a Resolver is immutable once built and
// safe for concurrent use.
package resolver

import (
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"component-resolver/internal/catalog"
	"component-resolver/internal/match"
	"component-resolver/internal/provider"
)

// Strategy names the step of the chain that produced a match.
type Strategy string

const (
	StrategyContextPattern Strategy = "context_pattern"
	StrategyExact          Strategy = "exact"
	StrategyNormalized     Strategy = "normalized"
	StrategyFuzzy          Strategy = "fuzzy"
	StrategyKeyword        Strategy = "keyword"
)

const (
	// keywordBoost is added to a fuzzy score when an entry keyword appears in
	// the display name.
	keywordBoost = 0.1
	// boostMinLen is the minimum length of a keyword eligible for the boost.
	boostMinLen = 4
	// selfKeywordBonus is added to a keyword overlap score when the input
	// itself is one of the entry's keywords.
	selfKeywordBonus = 0.2
	// DefaultMaxScan caps the number of catalog entries scored per request.
	DefaultMaxScan = 5000
)

// Options tunes a Resolver. Zero values select the defaults.
type Options struct {
	Matcher       match.Matcher
	FuzzyCutoff   float64
	KeywordCutoff float64
	MaxScan       int
	Patterns      []Pattern
}

func (o Options) withDefaults() Options {
	if o.Matcher == nil {
		o.Matcher = match.RatioMatcher{}
	}

	if o.FuzzyCutoff <= 0 {
		o.FuzzyCutoff = match.DefaultSimilarityCutoff
	}

	if o.KeywordCutoff <= 0 {
		o.KeywordCutoff = match.DefaultKeywordCutoff
	}

	if o.MaxScan <= 0 {
		o.MaxScan = DefaultMaxScan
	}

	if o.Patterns == nil {
		o.Patterns = DefaultPatterns
	}

	return o
}

// Match is the outcome of a successful Resolve.
type Match struct {
	NodeID   string   `json:"node_id" yaml:"node_id"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Score    float64  `json:"score" yaml:"score"`
}

// Suggestion is a ranked candidate offered when resolution fails.
type Suggestion struct {
	NodeID      string  `json:"node_id" yaml:"node_id"`
	Score       float64 `json:"score" yaml:"score"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Resolver disambiguates terms against one provider's catalog.
type Resolver struct {
	catalog  *catalog.Catalog
	provider provider.Provider
	opts     Options

	ids        []string
	normIDs    []string
	normalized map[string]string
	keywords   map[string]sets.Set[string]
	// keywordIndex maps a keyword to the node ids carrying it, sorted.
	keywordIndex map[string][]string
}

// New builds the normalized and keyword indexes over cat.
func New(cat *catalog.Catalog, opts Options) *Resolver {
	r := &Resolver{
		catalog:      cat,
		provider:     cat.Provider(),
		opts:         opts.withDefaults(),
		ids:          cat.AllNodeIDs(),
		normalized:   make(map[string]string, cat.Len()*2),
		keywords:     make(map[string]sets.Set[string], cat.Len()),
		keywordIndex: make(map[string][]string),
	}

	r.normIDs = make([]string, len(r.ids))
	for i, id := range r.ids {
		r.normIDs[i] = match.NormalizeIdent(id)
		if _, ok := r.normalized[r.normIDs[i]]; !ok {
			r.normalized[r.normIDs[i]] = id
		}
	}

	for _, id := range r.ids {
		e, _ := cat.Get(id)

		if norm := match.NormalizeIdent(e.ClassName); norm != "" {
			if _, ok := r.normalized[norm]; !ok {
				r.normalized[norm] = id
			}
		}

		kw := entryKeywords(e)
		r.keywords[id] = kw

		for _, k := range sets.List(kw) {
			r.keywordIndex[k] = append(r.keywordIndex[k], id)
		}
	}

	return r
}

// Provider returns the provider the resolver serves.
func (r *Resolver) Provider() provider.Provider { return r.provider }

// Canonical turns a raw term into the lower snake case form used for lookups:
// "ApiGateway" and "api-gateway" both become "api_gateway".
func Canonical(term string) string {
	return strings.Join(match.TokenizeIdent(term), "_")
}

// IsGeneric reports whether nodeID, or one of its tokens, is a generic term
// the pattern table knows how to narrow down: "subnet", "s3-buckets" and
// "web server" all are.
func (r *Resolver) IsGeneric(nodeID string) bool {
	term := Canonical(nodeID)
	if term == "" {
		return false
	}

	tokens := strings.Split(term, "_")

	for _, p := range r.opts.Patterns {
		if triggered(p, term, tokens) {
			return true
		}
	}

	return false
}

// Keywords returns the keyword set of nodeID, sorted.
func (r *Resolver) Keywords(nodeID string) []string {
	return sets.List(r.keywords[nodeID])
}

// Resolve returns the catalog node_id best matching nodeID, using the display
// name and context to disambiguate generic terms.
func (r *Resolver) Resolve(nodeID, displayName string, context map[string]string) (Match, bool) {
	term := Canonical(nodeID)
	if term == "" {
		return Match{}, false
	}

	direct, directOK := r.lookup(term)

	// A term the catalog already names is never re-interpreted.
	if !directOK {
		if id, ok := r.contextPattern(term, displayName, context); ok {
			return Match{NodeID: id, Strategy: StrategyContextPattern, Score: 1}, true
		}
	}

	if directOK {
		return direct, true
	}

	if m, ok := r.fuzzy(term, displayName); ok {
		return m, true
	}

	return r.keywordOverlap(term, displayName)
}

// Suggestions ranks catalog entries by similarity to nodeID with no cutoff.
func (r *Resolver) Suggestions(nodeID string, limit int) []Suggestion {
	if limit <= 0 {
		return nil
	}

	norm := match.NormalizeIdent(nodeID)
	if norm == "" {
		return nil
	}

	ranked := make(match.CandidateList, 0, min(len(r.ids), r.opts.MaxScan))
	for i, id := range r.scanIDs() {
		ranked = append(ranked, match.Candidate{Name: id, Score: r.opts.Matcher.Score(norm, r.normIDs[i])})
	}

	sort.Sort(ranked)

	out := make([]Suggestion, 0, min(limit, len(ranked)))
	for _, c := range ranked.Top(limit) {
		e, _ := r.catalog.Get(c.Name)
		out = append(out, Suggestion{NodeID: c.Name, Score: match.Round(c.Score), Description: e.Description})
	}

	return out
}

// lookup is the exact / normalized catalog step.
func (r *Resolver) lookup(term string) (Match, bool) {
	if _, ok := r.catalog.Get(term); ok {
		return Match{NodeID: term, Strategy: StrategyExact, Score: 1}, true
	}

	for _, form := range singularForms(match.NormalizeIdent(term)) {
		if id, ok := r.normalized[form]; ok {
			return Match{NodeID: id, Strategy: StrategyNormalized, Score: 1}, true
		}
	}

	return Match{}, false
}

func (r *Resolver) contextPattern(term, displayName string, context map[string]string) (string, bool) {
	tokens := strings.Split(term, "_")

	for _, p := range r.opts.Patterns {
		if !triggered(p, term, tokens) {
			continue
		}

		words := hintWords(tokens, displayName, context)

		for _, h := range p.Hints {
			if !words.HasAny(h.Words...) {
				continue
			}

			if id, ok := r.target(h.Targets); ok {
				return id, true
			}
		}

		// Only the first triggered pattern is consulted.
		return r.target(p.Default)
	}

	return "", false
}

func (r *Resolver) target(t Targets) (string, bool) {
	id, ok := t[r.provider]
	if !ok {
		return "", false
	}

	if _, exists := r.catalog.Get(id); !exists {
		return "", false
	}

	return id, true
}

func (r *Resolver) fuzzy(term, displayName string) (Match, bool) {
	norm := match.NormalizeIdent(term)
	nameWords := sets.New(match.Words(displayName)...)

	bestID, bestScore := "", -1.0

	for i, id := range r.scanIDs() {
		score := r.opts.Matcher.Score(norm, r.normIDs[i])

		if nameWords.Len() > 0 {
			for k := range r.keywords[id] {
				if len(k) >= boostMinLen && nameWords.Has(k) {
					score = min(score+keywordBoost, 1)
					break
				}
			}
		}

		if score > bestScore {
			bestID, bestScore = id, score
		}
	}

	if bestID == "" || !match.MeetsCutoff(bestScore, r.opts.FuzzyCutoff) {
		return Match{}, false
	}

	return Match{NodeID: bestID, Strategy: StrategyFuzzy, Score: match.Round(bestScore)}, true
}

func (r *Resolver) keywordOverlap(term, displayName string) (Match, bool) {
	input := textKeywords(strings.ReplaceAll(term, "_", " ") + " " + displayName)
	norm := match.NormalizeIdent(term)

	candidates := sets.New[string]()
	for k := range input {
		candidates.Insert(r.keywordIndex[k]...)
	}

	candidates.Insert(r.keywordIndex[norm]...)

	bestID, bestScore := "", 0.0

	for _, id := range sets.List(candidates) {
		kw := r.keywords[id]

		denom := max(input.Len(), kw.Len())
		if denom == 0 {
			continue
		}

		score := float64(input.Intersection(kw).Len()) / float64(denom)
		if kw.Has(norm) {
			score += selfKeywordBonus
		}

		score = min(score, 1)

		if score > bestScore {
			bestID, bestScore = id, score
		}
	}

	if bestID == "" || !match.MeetsCutoff(bestScore, r.opts.KeywordCutoff) {
		return Match{}, false
	}

	return Match{NodeID: bestID, Strategy: StrategyKeyword, Score: match.Round(bestScore)}, true
}

func (r *Resolver) scanIDs() []string {
	if len(r.ids) > r.opts.MaxScan {
		return r.ids[:r.opts.MaxScan]
	}

	return r.ids
}

func triggered(p Pattern, term string, tokens []string) bool {
	forms := append(singularForms(match.NormalizeIdent(term)), tokens...)
	for _, tok := range tokens {
		forms = append(forms, singularForms(tok)...)
	}

	for _, trigger := range p.Triggers {
		for _, f := range forms {
			if f == trigger {
				return true
			}
		}
	}

	return false
}

// hintWords collects the words of the term, display name and context values.
func hintWords(tokens []string, displayName string, context map[string]string) sets.Set[string] {
	words := sets.New[string]()

	add := func(ws ...string) {
		for _, w := range ws {
			words.Insert(singularForms(w)...)
		}
	}

	add(tokens...)
	add(match.Words(displayName)...)

	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		add(match.Words(context[k])...)
	}

	return words
}

// singularForms returns w plus w with a trailing "s" or "es" removed.
func singularForms(w string) []string {
	forms := []string{w}

	if len(w) > 3 && strings.HasSuffix(w, "s") {
		forms = append(forms, strings.TrimSuffix(w, "s"))
	}

	if len(w) > 4 && strings.HasSuffix(w, "es") {
		forms = append(forms, strings.TrimSuffix(w, "es"))
	}

	return forms
}
