package command

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"component-resolver/internal/provider"
)

// SuggestOptions holds the options for the suggest command.
type SuggestOptions struct {
	Provider string
	Limit    int
}

func NewSuggestCommand(cli *CLI) *cobra.Command {
	opts := SuggestOptions{Limit: 5}

	cmd := &cobra.Command{
		Use:   "suggest <node_id>",
		Short: "Rank catalog entries by similarity to a node_id",
		Long: Highlight("component-resolver suggest <node_id> --provider <aws|azure|gcp>") + "\n\n" +
			"List the catalog entries closest to node_id, best first, with no\n" +
			"similarity cutoff.\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSuggest(cmd.Context(), cli, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Provider, "provider", "p", string(provider.AWS), "Cloud provider (aws | azure | gcp)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", opts.Limit, "Maximum number of suggestions")

	return cmd
}

func RunSuggest(ctx context.Context, cli *CLI, nodeID string, opts SuggestOptions) error {
	if opts.Limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", opts.Limit)
	}

	coord, err := cli.Coordinator()
	if err != nil {
		return err
	}

	suggestions, err := coord.Suggestions(ctx, provider.Provider(opts.Provider), nodeID, opts.Limit)
	if err != nil {
		return err
	}

	return cli.emit(suggestions, func(w io.Writer) {
		if len(suggestions) == 0 {
			fmt.Fprintln(w, warning("no suggestions"))
			return
		}

		printSuggestions(w, suggestions)
	})
}
