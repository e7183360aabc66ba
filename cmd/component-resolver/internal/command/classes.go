package command

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"component-resolver/internal/provider"
)

// ClassesOptions holds the options for the classes command.
type ClassesOptions struct {
	Provider    string
	PerCategory int
}

func NewClassesCommand(cli *CLI) *cobra.Command {
	var opts ClassesOptions

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the toolkit classes available per catalog category",
		Long: Highlight("component-resolver classes --provider <aws|azure|gcp>") + "\n\n" +
			"Show the classes the toolkit exposes for every module a provider's\n" +
			"catalog references. Modules that cannot be introspected are empty.\n",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunClasses(cmd.Context(), cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Provider, "provider", "p", string(provider.AWS), "Cloud provider (aws | azure | gcp)")
	cmd.Flags().IntVar(&opts.PerCategory, "per-category", 0, "Maximum classes shown per category (0 shows all)")

	return cmd
}

func RunClasses(ctx context.Context, cli *CLI, opts ClassesOptions) error {
	coord, err := cli.Coordinator()
	if err != nil {
		return err
	}

	available, err := coord.AvailableClasses(ctx, provider.Provider(opts.Provider), opts.PerCategory)
	if err != nil {
		return err
	}

	return cli.emit(available, func(w io.Writer) { printAvailable(w, available) })
}
