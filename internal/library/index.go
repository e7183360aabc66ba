package library

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"k8s.io/apimachinery/pkg/util/sets"

	"component-resolver/internal/match"
	"component-resolver/internal/metrics"
	"component-resolver/internal/provider"
	"component-resolver/pkg/logger"
)

//go:generate go tool stringer -type=Tier -linecomment -output=tier_string.go

// Tier identifies which comparison located a class.
type Tier int

const (
	TierExact      Tier = iota + 1 // exact
	TierNormalized                 // normalized
	TierSubstring                  // substring
	TierSimilar                    // similar
)

// minContainedLen is the shortest name that may match by containment.
const minContainedLen = 3

// warmConcurrency bounds parallel module introspection during Warm.
const warmConcurrency = 8

// Class is a class the toolkit exposes.
type Class struct {
	ModulePath string  `json:"module_path" yaml:"module_path"`
	ClassName  string  `json:"class_name" yaml:"class_name"`
	Tier       Tier    `json:"-" yaml:"-"`
	Score      float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// moduleClasses is the memoized discovery result of one module.
type moduleClasses struct {
	set        sets.Set[string]
	names      []string   // sorted
	normalized []string   // NormalizeIdent(names[i])
	tokens     [][]string // TokenizeIdent(names[i])
	err        error
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithMatcher sets the similarity used by the fourth lookup tier.
func WithMatcher(m match.Matcher) IndexOption {
	return func(idx *Index) {
		if m != nil {
			idx.matcher = m
		}
	}
}

// WithCutoff sets the minimum similarity of the fourth lookup tier.
func WithCutoff(cutoff float64) IndexOption {
	return func(idx *Index) {
		idx.cutoff = cutoff
	}
}

// Index memoizes toolkit discovery for the modules of one provider. Each
// module is introspected at most once until Flush. It is safe for concurrent
// use.
type Index struct {
	provider provider.Provider
	modules  []string
	oracle   Oracle
	matcher  match.Matcher
	cutoff   float64

	mu    sync.RWMutex
	memo  map[string]*moduleClasses
	group singleflight.Group
}

// NewIndex returns an index over modules, discovered through oracle.
func NewIndex(p provider.Provider, modules []string, oracle Oracle, opts ...IndexOption) *Index {
	distinct := sets.New(modules...)
	distinct.Delete("")

	idx := &Index{
		provider: p,
		modules:  sets.List(distinct),
		oracle:   oracle,
		matcher:  match.RatioMatcher{},
		cutoff:   match.DefaultSimilarityCutoff,
		memo:     make(map[string]*moduleClasses, distinct.Len()),
	}

	for _, opt := range opts {
		opt(idx)
	}

	return idx
}

// Provider returns the provider the index serves.
func (idx *Index) Provider() provider.Provider { return idx.provider }

// Modules returns the indexed module paths, sorted.
func (idx *Index) Modules() []string {
	return slices.Clone(idx.modules)
}

// Discover returns the classes modulePath exposes. A module that cannot be
// introspected yields an empty set.
func (idx *Index) Discover(modulePath string) sets.Set[string] {
	return idx.discover(modulePath).set.Clone()
}

// Available reports whether modulePath could be introspected.
func (idx *Index) Available(modulePath string) bool {
	return idx.discover(modulePath).err == nil
}

// Has reports whether modulePath exposes className.
func (idx *Index) Has(modulePath, className string) bool {
	return idx.discover(modulePath).set.Has(className)
}

// HasExport reports whether className is reachable by direct access on
// modulePath. It is false when the oracle cannot answer direct lookups.
func (idx *Index) HasExport(modulePath, className string) bool {
	direct, ok := idx.oracle.(DirectLookup)
	if !ok {
		return false
	}

	return direct.HasExport(modulePath, className)
}

// Flush drops every memoized discovery result.
func (idx *Index) Flush() {
	idx.mu.Lock()
	idx.memo = make(map[string]*moduleClasses, len(idx.modules))
	idx.mu.Unlock()

	logger.Debug("library index flushed", "provider", idx.provider)
}

// Warm discovers every indexed module in parallel.
func (idx *Index) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)

	for _, modulePath := range idx.modules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			idx.discover(modulePath)

			return nil
		})
	}

	return g.Wait()
}

// AllAvailableClasses returns the discovered classes of every indexed module.
func (idx *Index) AllAvailableClasses() map[string]sets.Set[string] {
	out := make(map[string]sets.Set[string], len(idx.modules))
	for _, modulePath := range idx.modules {
		out[modulePath] = idx.Discover(modulePath)
	}

	return out
}

// FindClass locates term using all four tiers. The hint module, when given,
// is searched first; a miss there falls through to the other modules.
func (idx *Index) FindClass(term, hintModule string) (Class, bool) {
	return idx.find(term, hintModule, TierSimilar)
}

// FindExact is FindClass restricted to the exact and normalized tiers.
func (idx *Index) FindExact(term, hintModule string) (Class, bool) {
	return idx.find(term, hintModule, TierNormalized)
}

// Substring returns up to limit classes whose normalized name contains, or is
// contained in, the normalized term. Results are ordered by similarity.
func (idx *Index) Substring(term string, limit int) []Class {
	norm := match.NormalizeIdent(term)
	if len(norm) < minContainedLen || limit <= 0 {
		return nil
	}

	var found []Class

	for _, modulePath := range idx.modules {
		mc := idx.discover(modulePath)
		for i, name := range mc.names {
			if !contains(norm, mc.normalized[i]) {
				continue
			}

			found = append(found, Class{
				ModulePath: modulePath,
				ClassName:  name,
				Tier:       TierSubstring,
				Score:      match.Round(idx.matcher.Score(norm, mc.normalized[i])),
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score > found[j].Score
		}

		if found[i].ModulePath != found[j].ModulePath {
			return found[i].ModulePath < found[j].ModulePath
		}

		return found[i].ClassName < found[j].ClassName
	})

	if len(found) > limit {
		found = found[:limit]
	}

	return found
}

func (idx *Index) find(term, hintModule string, maxTier Tier) (Class, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Class{}, false
	}

	q := newQuery(term)

	hinted := false
	if hintModule != "" {
		_, hinted = slices.BinarySearch(idx.modules, hintModule)
	}

	if hinted {
		mc := idx.discover(hintModule)
		for tier := TierExact; tier <= maxTier; tier++ {
			if name, score, ok := idx.matchIn(q, mc, tier); ok {
				return Class{ModulePath: hintModule, ClassName: name, Tier: tier, Score: score}, true
			}
		}
	}

	for tier := TierExact; tier <= maxTier; tier++ {
		for _, modulePath := range idx.modules {
			if hinted && modulePath == hintModule {
				continue
			}

			if name, score, ok := idx.matchIn(q, idx.discover(modulePath), tier); ok {
				return Class{ModulePath: modulePath, ClassName: name, Tier: tier, Score: score}, true
			}
		}
	}

	return Class{}, false
}

type query struct {
	raw        string
	normalized string
	stripped   string
	tokens     []string
}

func newQuery(term string) query {
	norm := match.NormalizeIdent(term)

	return query{
		raw:        term,
		normalized: norm,
		stripped:   match.StripVendorPrefix(norm),
		tokens:     match.TokenizeIdent(term),
	}
}

func (idx *Index) matchIn(q query, mc *moduleClasses, tier Tier) (string, float64, bool) {
	switch tier {
	case TierExact:
		for _, name := range mc.names {
			if strings.EqualFold(name, q.raw) {
				return name, 1, true
			}
		}

	case TierNormalized:
		if q.normalized == "" {
			return "", 0, false
		}

		for i, name := range mc.names {
			n := mc.normalized[i]
			if n == q.normalized || match.StripVendorPrefix(n) == q.stripped {
				return name, 1, true
			}
		}

	case TierSubstring:
		var candidates []string

		for i, name := range mc.names {
			if tokenContains(q.tokens, mc.tokens[i]) {
				candidates = append(candidates, name)
			}
		}

		if best := match.Rank(q.normalized, candidates, idx.matcher).Best(); best != nil {
			return best.Name, match.Round(best.Score), true
		}

	case TierSimilar:
		best := match.Rank(q.normalized, mc.names, idx.matcher).Best()
		if best != nil && match.MeetsCutoff(best.Score, idx.cutoff) {
			return best.Name, match.Round(best.Score), true
		}
	}

	return "", 0, false
}

// contains reports containment in either direction, ignoring names shorter
// than minContainedLen on the contained side.
func contains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	if len(a) >= minContainedLen && strings.Contains(b, a) {
		return true
	}

	return len(b) >= minContainedLen && strings.Contains(a, b)
}

// tokenContains is contains restricted to token boundaries: one side,
// joined, must equal a contiguous run of the other side's tokens. "gateway"
// is in APIGateway, "ebs" is not in "web_server".
func tokenContains(a, b []string) bool {
	return isTokenRun(a, b) || isTokenRun(b, a)
}

func isTokenRun(inner, outer []string) bool {
	want := strings.Join(inner, "")
	if len(want) < minContainedLen {
		return false
	}

	for i := range outer {
		var run strings.Builder

		for _, tok := range outer[i:] {
			run.WriteString(tok)

			if run.Len() >= len(want) {
				if run.String() == want {
					return true
				}

				break
			}
		}
	}

	return false
}

func (idx *Index) discover(modulePath string) *moduleClasses {
	idx.mu.RLock()
	mc, ok := idx.memo[modulePath]
	idx.mu.RUnlock()

	if ok {
		return mc
	}

	v, _, _ := idx.group.Do(modulePath, func() (interface{}, error) {
		idx.mu.RLock()
		cached, ok := idx.memo[modulePath]
		idx.mu.RUnlock()

		if ok {
			return cached, nil
		}

		mc := idx.introspect(modulePath)

		idx.mu.Lock()
		idx.memo[modulePath] = mc
		idx.mu.Unlock()

		return mc, nil
	})

	return v.(*moduleClasses)
}

func (idx *Index) introspect(modulePath string) *moduleClasses {
	start := time.Now()
	classes, err := idx.safeDiscover(modulePath)
	elapsed := time.Since(start)

	outcome := metrics.OutcomeSuccess

	switch {
	case err != nil:
		outcome = metrics.OutcomeError
		classes = sets.New[string]()

		logger.Warn("toolkit module unavailable",
			"provider", idx.provider, "module", modulePath, "error", err)
	case classes.Len() == 0:
		outcome = metrics.OutcomeEmpty
	}

	metrics.ObserveDiscovery(string(idx.provider), outcome, elapsed)
	logger.Debug("toolkit module discovered",
		"provider", idx.provider, "module", modulePath, "classes", classes.Len(), "elapsed", elapsed)

	names := sets.List(classes)
	normalized := make([]string, len(names))
	tokens := make([][]string, len(names))

	for i, name := range names {
		normalized[i] = match.NormalizeIdent(name)
		tokens[i] = match.TokenizeIdent(name)
	}

	return &moduleClasses{set: classes, names: names, normalized: normalized, tokens: tokens, err: err}
}

// safeDiscover shields the index from oracles that panic or return nil.
func (idx *Index) safeDiscover(modulePath string) (classes sets.Set[string], err error) {
	defer func() {
		if r := recover(); r != nil {
			classes, err = nil, errors.New("introspection panicked")
			logger.Error("toolkit introspection panicked",
				"provider", idx.provider, "module", modulePath, "panic", r)
		}
	}()

	if idx.oracle == nil {
		return nil, ErrModuleNotFound
	}

	classes, err = idx.oracle.Discover(modulePath)
	if err == nil && classes == nil {
		classes = sets.New[string]()
	}

	return classes, err
}
