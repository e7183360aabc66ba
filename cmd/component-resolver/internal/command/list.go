package command

import (
	"context"
	"fmt"
	"io"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"component-resolver/internal/provider"
)

// allProviders selects every supported provider.
const allProviders = "all"

// ListOptions holds the options for the list command.
type ListOptions struct {
	Provider string
	Filter   string
}

func NewListCommand(cli *CLI) *cobra.Command {
	var opts ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog entries of a provider",
		Long: Highlight("component-resolver list --provider <aws|azure|gcp|all> [--filter <pattern>]") + "\n\n" +
			"List catalog entries sorted by node_id. With --filter, only entries whose\n" +
			"node_id fuzzily matches the pattern are shown, best match first.\n\n" +
			"Examples:\n" +
			"  # Every storage-like entry of every provider\n" +
			"  component-resolver list -p all -f storage\n",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunList(cmd.Context(), cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Provider, "provider", "p", string(provider.AWS), "Cloud provider (aws | azure | gcp | all)")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Fuzzy filter applied to node ids")

	return cmd
}

// listEntry is one row of the list command.
type listEntry struct {
	Provider    string `json:"provider" yaml:"provider"`
	NodeID      string `json:"node_id" yaml:"node_id"`
	Category    string `json:"category" yaml:"category"`
	ModulePath  string `json:"module_path" yaml:"module_path"`
	ClassName   string `json:"class_name" yaml:"class_name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func RunList(ctx context.Context, cli *CLI, opts ListOptions) error {
	coord, err := cli.Coordinator()
	if err != nil {
		return err
	}

	var providers []provider.Provider
	if opts.Provider != allProviders {
		providers = []provider.Provider{provider.Provider(opts.Provider)}
	}

	set, err := coord.Catalogs(ctx, providers...)
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0)

	for _, p := range set.Providers() {
		for _, id := range filterIDs(set.AllNodeIDs(p), opts.Filter) {
			e, _ := set.Get(p, id)
			entries = append(entries, listEntry{
				Provider:    string(p),
				NodeID:      e.NodeID,
				Category:    e.Category,
				ModulePath:  set.ModuleFor(p, e.Category),
				ClassName:   e.ClassName,
				Description: e.Description,
			})
		}
	}

	return cli.emit(entries, func(w io.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, warning("no matching entries"))
			return
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.Provider, e.NodeID, e.Category, e.ClassName, e.Description})
		}

		renderTable(w, []string{"PROVIDER", "NODE ID", "CATEGORY", "CLASS", "DESCRIPTION"}, rows)
	})
}

// filterIDs keeps the ids fuzzily matching pattern, best match first.
func filterIDs(ids []string, pattern string) []string {
	if pattern == "" {
		return ids
	}

	matches := fuzzy.Find(pattern, ids)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}

	return out
}
