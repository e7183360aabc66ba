package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the root command with the global flags bound to cli.
func NewRootCommand(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component-resolver",
		Short: "Resolve architecture components to diagram toolkit classes",
		Long: Highlight("Usage: component-resolver [global options] <subcommand> [args]") + "\n\n" +
			"component-resolver maps loosely named components (\"db\", \"Public Subnet\",\n" +
			"\"api-gateway\") of an aws, azure or gcp architecture onto the node classes\n" +
			"exposed by the diagram rendering toolkit.\n",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.setup()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVar(&cli.configPath, "config", "",
		"Configuration file (defaults to $COMPONENT_RESOLVER_CONFIG)")
	cmd.PersistentFlags().StringVarP(&cli.output, "output", "o", "", "Output format. One of: (human | json | yaml)")
	cmd.PersistentFlags().BoolVar(&cli.debug, "debug", false, "Set log level to debug")

	setUsageTemplate(cmd)

	return cmd
}

func setUsageTemplate(cmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleHeading", color.RGB(50, 108, 229).SprintFunc())

	cmd.SetUsageTemplate(strings.NewReplacer(
		`Usage:`, `{{StyleHeading "Usage:"}}`,
		`Examples:`, `{{StyleHeading "Examples:"}}`,
		`Available Commands:`, `{{StyleHeading "Available Commands:"}}`,
		`Flags:`, `{{StyleHeading "Options:"}}`,
		`Global Flags:`, `{{StyleHeading "Global Options:"}}`,
	).Replace(cmd.UsageTemplate()))
}

// AddCommands registers all subcommands to the root command.
func AddCommands(root *cobra.Command, cli *CLI) {
	root.AddCommand(
		NewResolveCommand(cli),
		NewSuggestCommand(cli),
		NewListCommand(cli),
		NewClassesCommand(cli),
		NewValidateCommand(cli),
	)
}

// Execute runs the CLI and exits with status 1 on error.
func Execute() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}

	cli := NewCLI(os.Stdout, os.Stderr)
	root := NewRootCommand(cli)
	AddCommands(root, cli)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(cli.Err, failed("Error:"), err)
		os.Exit(1)
	}
}
