// Package coordinator resolves component requests into concrete toolkit
// classes.
//
// A Coordinator owns one immutable snapshot per provider (catalog, toolkit
// index, fuzzy resolver) built on first use. Resolve walks a fixed sequence:
//
//	remap -> direct toolkit lookup -> disambiguation + retry -> catalog fallback
//
// and returns either a Resolution or a *Failure describing what was tried and
// what the caller could use instead.
package coordinator

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"k8s.io/apimachinery/pkg/util/sets"

	"component-resolver/internal/catalog"
	"component-resolver/internal/diagnostic"
	"component-resolver/internal/library"
	"component-resolver/internal/match"
	"component-resolver/internal/metrics"
	"component-resolver/internal/provider"
	"component-resolver/internal/resolver"
	"component-resolver/pkg/logger"
)

// Coordinator resolves requests against per-provider snapshots. It is safe
// for concurrent use.
type Coordinator struct {
	loader catalog.Loader
	oracle library.Oracle
	opts   Options
	remaps *remapper

	mu        sync.RWMutex
	snapshots map[provider.Provider]*snapshot
	// generation is bumped by Flush.
	generation uint64
	group      singleflight.Group
}

// New returns a Coordinator reading catalogs from loader and toolkit
// availability from oracle.
func New(loader catalog.Loader, oracle library.Oracle, opts Options) *Coordinator {
	opts = opts.withDefaults()

	c := &Coordinator{
		loader:    loader,
		oracle:    oracle,
		opts:      opts,
		remaps:    newRemapper(opts.remapRules()),
		snapshots: make(map[provider.Provider]*snapshot),
	}

	logger.Debug("coordinator created", "remap_rules", c.remaps.count(), "matcher", opts.Matcher.Name())

	return c
}

// Resolve resolves one request. Unsupported providers yield an
// *UnsupportedProviderError, unusable catalogs a *catalog.LoadError, and
// exhausted strategies a *Failure.
func (c *Coordinator) Resolve(ctx context.Context, req Request) (Resolution, error) {
	p, err := checkProvider(req.Provider)
	if err != nil {
		return Resolution{}, err
	}

	snap, err := c.snapshot(ctx, p)
	if err != nil {
		return Resolution{}, err
	}

	res, err := c.resolve(snap, p, req)
	if err != nil {
		var f *Failure
		if errors.As(err, &f) {
			metrics.ObserveResolution(string(p), string(f.Kind))
		}

		logger.Debug("resolution failed", "provider", p, "node_id", req.NodeID, "error", err)

		return Resolution{}, err
	}

	metrics.ObserveResolution(string(p), string(res.Strategy))
	logger.Debug("resolved component",
		"provider", p, "node_id", req.NodeID, "class", res.ModulePath+"."+res.ClassName, "strategy", res.Strategy)

	return res, nil
}

func (c *Coordinator) resolve(snap *snapshot, p provider.Provider, req Request) (Resolution, error) {
	term := resolver.Canonical(truncate(req.NodeID, c.opts.MaxTermLength))
	attempted := make([]string, 0, 6)

	if mapped, rule, ok := c.remaps.apply(p, term, req); ok {
		logger.Debug("remapped node_id", "provider", p, "from", term, "to", mapped, "rule", rule)

		term = mapped
		attempted = append(attempted, stepRemap+":"+rule)
	}

	// NodeID is the catalog entry declaring the class, or empty when the
	// toolkit class has no entry.
	succeed := func(cls library.Class, strategy Strategy, matchedBy resolver.Strategy, score float64) Resolution {
		var nodeID string
		if e, ok := snap.catalog.ByClass(cls.ModulePath, cls.ClassName); ok {
			nodeID = e.NodeID
		}

		return Resolution{
			Provider:    p,
			RequestedID: req.NodeID,
			NodeID:      nodeID,
			ModulePath:  cls.ModulePath,
			ClassName:   cls.ClassName,
			Strategy:    strategy,
			MatchedBy:   matchedBy,
			Score:       score,
		}
	}

	// Catalog ids and generic terms only accept exact and normalized class
	// hits before disambiguation.
	_, known := snap.catalog.Get(term)
	generic := snap.resolver.IsGeneric(term)
	hint := snap.catalog.ModuleForNode(term)

	attempted = append(attempted, stepLibraryDirect)

	if cls, ok := c.lookup(snap, term, hint, known || generic); ok {
		return succeed(cls, StrategyLibraryDirect, "", cls.Score), nil
	}

	resolved := term

	if generic || req.DisplayName != "" {
		attempted = append(attempted, stepFuzzyResolver)

		if m, ok := snap.resolver.Resolve(term, req.DisplayName, req.Context); ok && m.NodeID != term {
			resolved = m.NodeID
			attempted = append(attempted, stepLibraryRetry)

			if cls, ok := snap.index.FindExact(resolved, snap.catalog.ModuleForNode(resolved)); ok {
				return succeed(cls, StrategyLibraryDirect, m.Strategy, m.Score), nil
			}
		}
	}

	if e, ok := snap.catalog.Get(resolved); ok {
		modulePath := snap.catalog.ModuleFor(e.Category)
		cls := library.Class{ModulePath: modulePath, ClassName: e.ClassName}

		attempted = append(attempted, stepCatalogValidated)

		if snap.index.Has(modulePath, e.ClassName) {
			return succeed(cls, StrategyCatalogValidated, "", 1), nil
		}

		attempted = append(attempted, stepCatalogDirect)

		if snap.index.HasExport(modulePath, e.ClassName) {
			return succeed(cls, StrategyCatalogDirectImport, "", 1), nil
		}

		return Resolution{}, &Failure{
			Kind:                FailureClassNotFound,
			Provider:            p,
			RequestedID:         req.NodeID,
			NodeID:              resolved,
			AttemptedStrategies: attempted,
			ModulePath:          modulePath,
			ClassName:           e.ClassName,
			Alternatives: match.CloseMatches(e.ClassName, sets.List(snap.index.Discover(modulePath)),
				c.opts.AlternativeLimit, c.opts.AlternativeThreshold, c.opts.Matcher),
		}
	}

	return Resolution{}, &Failure{
		Kind:                FailureNoMatch,
		Provider:            p,
		RequestedID:         req.NodeID,
		NodeID:              resolved,
		AttemptedStrategies: attempted,
		Suggestions:         c.suggestions(snap, term, c.opts.SuggestionLimit),
		Available:           available(snap, c.opts.ClassesPerCategory),
	}
}

func (c *Coordinator) lookup(snap *snapshot, term, hint string, strict bool) (library.Class, bool) {
	if strict {
		return snap.index.FindExact(term, hint)
	}

	return snap.index.FindClass(term, hint)
}

// ResolveAll resolves independent requests concurrently. Results are in
// request order.
func (c *Coordinator) ResolveAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			results[i].Request = req

			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			res, err := c.Resolve(ctx, req)
			if err != nil {
				results[i].Err = err
				return nil
			}

			results[i].Resolution = &res

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// Suggestions ranks catalog entries of provider p by similarity to nodeID.
func (c *Coordinator) Suggestions(ctx context.Context, p provider.Provider, nodeID string, limit int) ([]Suggestion, error) {
	p, err := checkProvider(p)
	if err != nil {
		return nil, err
	}

	snap, err := c.snapshot(ctx, p)
	if err != nil {
		return nil, err
	}

	return catalogSuggestions(snap, resolver.Canonical(truncate(nodeID, c.opts.MaxTermLength)), limit), nil
}

// AllNodeIDs returns the sorted node ids of provider p.
func (c *Coordinator) AllNodeIDs(ctx context.Context, p provider.Provider) ([]string, error) {
	cat, err := c.Catalog(ctx, p)
	if err != nil {
		return nil, err
	}

	return cat.AllNodeIDs(), nil
}

// Catalog returns the catalog snapshot of provider p.
func (c *Coordinator) Catalog(ctx context.Context, p provider.Provider) (*catalog.Catalog, error) {
	p, err := checkProvider(p)
	if err != nil {
		return nil, err
	}

	snap, err := c.snapshot(ctx, p)
	if err != nil {
		return nil, err
	}

	return snap.catalog, nil
}

// Catalogs returns the catalogs of providers, or of every supported provider
// when none is given.
func (c *Coordinator) Catalogs(ctx context.Context, providers ...provider.Provider) (*catalog.Set, error) {
	if len(providers) == 0 {
		providers = provider.Supported()
	}

	loaded := make([]*catalog.Catalog, 0, len(providers))

	for _, p := range providers {
		cat, err := c.Catalog(ctx, p)
		if err != nil {
			return nil, err
		}

		loaded = append(loaded, cat)
	}

	return catalog.NewSet(loaded...), nil
}

// AvailableClasses lists the toolkit classes of every catalog category of
// provider p. perCategory <= 0 disables capping.
func (c *Coordinator) AvailableClasses(ctx context.Context, p provider.Provider, perCategory int) ([]CategoryClasses, error) {
	p, err := checkProvider(p)
	if err != nil {
		return nil, err
	}

	snap, err := c.snapshot(ctx, p)
	if err != nil {
		return nil, err
	}

	return available(snap, perCategory), nil
}

// Verify returns the catalog load warnings and the drift between the catalog
// of provider p and the toolkit.
func (c *Coordinator) Verify(ctx context.Context, p provider.Provider) (*diagnostic.Diagnostics, error) {
	p, err := checkProvider(p)
	if err != nil {
		return nil, err
	}

	snap, err := c.snapshot(ctx, p)
	if err != nil {
		return nil, err
	}

	out := &diagnostic.Diagnostics{Warnings: snap.catalog.Warnings()}
	out.Merge(*snap.drift)

	return out, nil
}

// Flush drops every provider snapshot; the next request rebuilds it. Builds
// in flight at the time of the call are not cached.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshots = make(map[provider.Provider]*snapshot)
	c.generation++

	for _, p := range provider.Supported() {
		c.group.Forget(string(p))
	}
}

func (c *Coordinator) suggestions(snap *snapshot, term string, limit int) []Suggestion {
	merged := catalogSuggestions(snap, term, limit)

	for _, cls := range snap.index.Substring(term, limit) {
		s := Suggestion{
			ClassName:  cls.ClassName,
			ModulePath: cls.ModulePath,
			Score:      cls.Score,
			Source:     SourceLibrary,
		}

		if e, ok := snap.catalog.ByClass(cls.ModulePath, cls.ClassName); ok {
			s.NodeID = e.NodeID
			s.Description = e.Description
		}

		merged = append(merged, s)
	}

	return dedupe(merged, limit)
}

func catalogSuggestions(snap *snapshot, term string, limit int) []Suggestion {
	ranked := snap.resolver.Suggestions(term, limit)
	out := make([]Suggestion, 0, len(ranked))

	for _, r := range ranked {
		e, _ := snap.catalog.Get(r.NodeID)
		out = append(out, Suggestion{
			NodeID:      r.NodeID,
			ClassName:   e.ClassName,
			ModulePath:  snap.catalog.ModuleFor(e.Category),
			Score:       r.Score,
			Description: r.Description,
			Source:      SourceCatalog,
		})
	}

	return out
}

// dedupe keeps the best scored suggestion per class, ordered by score.
func dedupe(in []Suggestion, limit int) []Suggestion {
	type key struct{ module, class string }

	best := make(map[key]int, len(in))
	out := make([]Suggestion, 0, len(in))

	for _, s := range in {
		k := key{s.ModulePath, s.ClassName}
		if i, ok := best[k]; ok {
			if s.Score > out[i].Score {
				out[i] = s
			}

			continue
		}

		best[k] = len(out)
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}

func available(snap *snapshot, perCategory int) []CategoryClasses {
	all := snap.index.AllAvailableClasses()
	categories := snap.catalog.Categories()
	out := make([]CategoryClasses, 0, len(categories))

	for _, category := range categories {
		modulePath := snap.catalog.ModuleFor(category)
		classes := sets.List(all[modulePath])
		total := len(classes)

		if perCategory > 0 && total > perCategory {
			classes = classes[:perCategory]
		}

		out = append(out, CategoryClasses{
			Category:   category,
			ModulePath: modulePath,
			Classes:    classes,
			Total:      total,
		})
	}

	return out
}

func checkProvider(p provider.Provider) (provider.Provider, error) {
	parsed, err := provider.Parse(string(p))
	if err != nil {
		return "", &UnsupportedProviderError{Provider: string(p), Supported: provider.SupportedNames()}
	}

	return parsed, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
