package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"component-resolver/internal/coordinator"
	"component-resolver/internal/provider"
)

// ResolveOptions holds the options for the resolve command.
type ResolveOptions struct {
	Provider string
	Name     string
	Context  map[string]string
}

func NewResolveCommand(cli *CLI) *cobra.Command {
	var opts ResolveOptions

	cmd := &cobra.Command{
		Use:   "resolve <node_id>",
		Short: "Resolve a component to a toolkit class",
		Long: Highlight("component-resolver resolve <node_id> --provider <aws|azure|gcp>") + "\n\n" +
			"Resolve a node_id to the module path and class name of a toolkit node.\n\n" +
			"Generic ids such as \"subnet\" or \"db\" are narrowed down using the\n" +
			"display name and context values.\n\n" +
			"Examples:\n" +
			"  # Resolve an exact catalog id\n" +
			"  component-resolver resolve lambda -p aws\n\n" +
			"  # Disambiguate a generic id\n" +
			"  component-resolver resolve subnet -p aws --name \"Public Subnet\"\n\n" +
			"  # Pass extra context\n" +
			"  component-resolver resolve database -p gcp --context engine=redis\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunResolve(cmd.Context(), cli, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Provider, "provider", "p", string(provider.AWS), "Cloud provider (aws | azure | gcp)")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Display name of the component")
	cmd.Flags().StringToStringVar(&opts.Context, "context", nil, "Additional context as key=value pairs")

	return cmd
}

// resolveOutput is the machine readable result of resolve.
type resolveOutput struct {
	Resolution *coordinator.Resolution `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Failure    *coordinator.Failure    `json:"failure,omitempty" yaml:"failure,omitempty"`
}

func RunResolve(ctx context.Context, cli *CLI, nodeID string, opts ResolveOptions) error {
	coord, err := cli.Coordinator()
	if err != nil {
		return err
	}

	res, err := coord.Resolve(ctx, coordinator.Request{
		NodeID:      nodeID,
		DisplayName: opts.Name,
		Provider:    provider.Provider(opts.Provider),
		Context:     opts.Context,
	})
	if err == nil {
		return cli.emit(resolveOutput{Resolution: &res}, func(w io.Writer) { printResolution(w, res) })
	}

	var f *coordinator.Failure
	if !errors.As(err, &f) {
		return err
	}

	if emitErr := cli.emit(resolveOutput{Failure: f}, func(w io.Writer) { printFailure(w, f) }); emitErr != nil {
		return emitErr
	}

	return err
}

func printResolution(w io.Writer, res coordinator.Resolution) {
	fmt.Fprintf(w, "%s %s -> %s.%s\n", success("resolved"), res.RequestedID, res.ModulePath, res.ClassName)

	if res.NodeID != "" {
		fmt.Fprintf(w, "  %s %s\n", label("node_id: "), res.NodeID)
	}

	fmt.Fprintf(w, "  %s %s\n", label("strategy:"), res.Strategy)

	if res.MatchedBy != "" {
		fmt.Fprintf(w, "  %s %s (%s)\n", label("matched: "), res.MatchedBy, score(res.Score))
	}
}

func printFailure(w io.Writer, f *coordinator.Failure) {
	fmt.Fprintf(w, "%s %s (%s)\n", failed(string(f.Kind)), f.RequestedID, f.Provider)
	fmt.Fprintf(w, "  %s %s\n", label("attempted:"), strings.Join(f.AttemptedStrategies, ", "))

	if f.Kind == coordinator.FailureClassNotFound {
		fmt.Fprintf(w, "  %s %s.%s\n", label("expected: "), f.ModulePath, f.ClassName)

		if len(f.Alternatives) > 0 {
			fmt.Fprintf(w, "  %s %s\n", label("alternatives:"), strings.Join(f.Alternatives, ", "))
		}

		return
	}

	if len(f.Suggestions) > 0 {
		fmt.Fprintln(w, "\nDid you mean:")
		printSuggestions(w, f.Suggestions)
	}

	if len(f.Available) > 0 {
		fmt.Fprintln(w, "\nAvailable classes:")
		printAvailable(w, f.Available)
	}
}

func printSuggestions(w io.Writer, suggestions []coordinator.Suggestion) {
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{s.NodeID, s.ModulePath + "." + s.ClassName, score(s.Score), s.Source, s.Description})
	}

	renderTable(w, []string{"NODE ID", "CLASS", "SCORE", "SOURCE", "DESCRIPTION"}, rows)
}

func printAvailable(w io.Writer, available []coordinator.CategoryClasses) {
	rows := make([][]string, 0, len(available))
	for _, a := range available {
		classes := strings.Join(a.Classes, ", ")
		if more := a.Total - len(a.Classes); more > 0 {
			classes += fmt.Sprintf(" (+%d more)", more)
		}

		rows = append(rows, []string{a.Category, a.ModulePath, classes})
	}

	renderTable(w, []string{"CATEGORY", "MODULE", "CLASSES"}, rows)
}
