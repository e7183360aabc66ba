package command

import (
	"fmt"

	"component-resolver/internal/catalog"
	"component-resolver/internal/config"
	"component-resolver/internal/coordinator"
	"component-resolver/internal/library"
	"component-resolver/internal/match"
)

// NewCoordinator wires the catalog source, toolkit oracle and tuning of conf.
func NewCoordinator(conf *config.Config) (*coordinator.Coordinator, error) {
	oracle, err := NewOracle(conf.Toolkit)
	if err != nil {
		return nil, err
	}

	m, err := match.ParseMatcher(conf.Resolution.Matcher)
	if err != nil {
		return nil, err
	}

	opts := coordinator.DefaultOptions()
	opts.Matcher = m
	opts.FuzzyThreshold = conf.Resolution.FuzzyThreshold
	opts.KeywordThreshold = conf.Resolution.KeywordThreshold
	opts.SuggestionLimit = conf.Resolution.SuggestionLimit
	opts.ClassesPerCategory = conf.Resolution.ClassesPerCategory
	opts.MaxScan = conf.Resolution.MaxScan
	opts.MaxTermLength = conf.Resolution.MaxTermLength

	for _, r := range conf.Remaps {
		opts.Remaps = append(opts.Remaps, coordinator.RemapRule{Name: r.Name, When: r.When, Target: r.Target})
	}

	return coordinator.New(NewLoader(conf.Catalog), oracle, opts), nil
}

// NewLoader returns the catalog source of conf.
func NewLoader(conf config.CatalogConfig) catalog.Loader {
	if conf.Dir == "" {
		return catalog.Embedded()
	}

	return catalog.Dir(conf.Dir)
}

// NewOracle returns the toolkit availability oracle of conf.
func NewOracle(conf config.ToolkitConfig) (library.Oracle, error) {
	switch conf.Oracle {
	case config.OraclePackages:
		return library.NewPackagesOracle(conf.Root, conf.Dir), nil
	case "", config.OracleManifest:
		if conf.Manifest == "" {
			return library.BuiltinOracle()
		}

		return library.LoadManifest(conf.Manifest)
	default:
		return nil, fmt.Errorf("unknown toolkit oracle %q", conf.Oracle)
	}
}
