package coordinator

import (
	"context"
	"fmt"

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

// snapshot is the immutable per-provider state shared by every resolution.
type snapshot struct {
	catalog  *catalog.Catalog
	index    *library.Index
	resolver *resolver.Resolver
	// drift records catalog entries the toolkit does not back.
	drift *diagnostic.Diagnostics
}

// snapshot returns the provider snapshot, building it on first use. Concurrent
// first callers share one build; a failed build is not cached. The build does
// not inherit the caller's cancellation, and a build that overlaps a Flush is
// returned to its waiters but never stored.
func (c *Coordinator) snapshot(ctx context.Context, p provider.Provider) (*snapshot, error) {
	c.mu.RLock()
	snap, ok := c.snapshots[p]
	c.mu.RUnlock()

	if ok {
		return snap, nil
	}

	v, err, _ := c.group.Do(string(p), func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.snapshots[p]
		generation := c.generation
		c.mu.RUnlock()

		if ok {
			return cached, nil
		}

		built, err := c.build(context.WithoutCancel(ctx), p)
		if err != nil {
			metrics.ObserveSnapshotBuild(string(p), metrics.OutcomeError)
			return nil, err
		}

		metrics.ObserveSnapshotBuild(string(p), metrics.OutcomeSuccess)

		c.mu.Lock()
		if c.generation == generation {
			c.snapshots[p] = built
		}
		c.mu.Unlock()

		return built, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*snapshot), nil
}

func (c *Coordinator) build(ctx context.Context, p provider.Provider) (*snapshot, error) {
	cat, err := c.loader.Load(p)
	if err != nil {
		return nil, err
	}

	idx := library.NewIndex(p, cat.ModulePaths(), c.oracle,
		library.WithMatcher(c.opts.Matcher),
		library.WithCutoff(c.opts.FuzzyThreshold),
	)

	if err := idx.Warm(ctx); err != nil {
		return nil, fmt.Errorf("failed to index toolkit modules for %s: %w", p, err)
	}

	res := resolver.New(cat, resolver.Options{
		Matcher:       c.opts.Matcher,
		FuzzyCutoff:   c.opts.FuzzyThreshold,
		KeywordCutoff: c.opts.KeywordThreshold,
		MaxScan:       c.opts.MaxScan,
		Patterns:      c.opts.Patterns,
	})

	drift := verify(cat, idx, c.opts.Matcher)

	logger.Debug("provider snapshot built",
		"provider", p,
		"entries", cat.Len(),
		"modules", len(idx.Modules()),
		"drift_warnings", len(drift.Warnings),
	)

	return &snapshot{catalog: cat, index: idx, resolver: res, drift: drift}, nil
}

// verify cross-checks every catalog entry against the toolkit index.
func verify(cat *catalog.Catalog, idx *library.Index, m match.Matcher) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}
	p := string(cat.Provider())

	for _, category := range cat.Categories() {
		modulePath := cat.ModuleFor(category)
		if !idx.Available(modulePath) {
			diags.AddWarning("module_unavailable",
				fmt.Sprintf("toolkit module %s cannot be introspected", modulePath), p, "modules."+category)
		}
	}

	for _, e := range cat.Entries() {
		modulePath := cat.ModuleFor(e.Category)
		if modulePath == "" || !idx.Available(modulePath) {
			continue
		}

		if idx.Has(modulePath, e.ClassName) || idx.HasExport(modulePath, e.ClassName) {
			continue
		}

		names := sets.List(idx.Discover(modulePath))
		diags.AddWarning("class_unavailable",
			fmt.Sprintf("class %s is not exposed by %s", e.ClassName, modulePath), p, "nodes."+e.NodeID,
			match.CloseMatches(e.ClassName, names, 3, match.DefaultKeywordCutoff, m)...)
	}

	return diags
}
