package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"component-resolver/internal/diagnostic"
	"component-resolver/internal/provider"
)

// ValidateOptions holds the options for the validate command.
type ValidateOptions struct {
	Provider string
	Strict   bool
}

func NewValidateCommand(cli *CLI) *cobra.Command {
	var opts ValidateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate catalogs against their schema and the toolkit",
		Long: Highlight("component-resolver validate [--provider <aws|azure|gcp>]") + "\n\n" +
			"Load each provider catalog and report schema errors, schema warnings\n" +
			"and catalog entries whose class the toolkit does not expose.\n\n" +
			"Examples:\n" +
			"  # Validate every provider\n" +
			"  component-resolver validate\n\n" +
			"  # Fail on warnings too\n" +
			"  component-resolver validate -p gcp --strict\n",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunValidate(cmd.Context(), cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Provider, "provider", "p", "", "Validate a single provider (default all)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat warnings as failures")

	return cmd
}

// validateIssue is one diagnostic of the validate command.
type validateIssue struct {
	Code        string   `json:"code" yaml:"code"`
	Path        string   `json:"path,omitempty" yaml:"path,omitempty"`
	Message     string   `json:"message" yaml:"message"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// validateResult is the outcome for one provider.
type validateResult struct {
	Provider string          `json:"provider" yaml:"provider"`
	Valid    bool            `json:"valid" yaml:"valid"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings []validateIssue `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func RunValidate(ctx context.Context, cli *CLI, opts ValidateOptions) error {
	providers := provider.Supported()

	if opts.Provider != "" {
		p, err := provider.Parse(opts.Provider)
		if err != nil {
			return err
		}

		providers = []provider.Provider{p}
	}

	coord, err := cli.Coordinator()
	if err != nil {
		return err
	}

	results := make([]validateResult, 0, len(providers))
	failures := 0

	for _, p := range providers {
		r := validateResult{Provider: string(p), Valid: true}

		diags, err := coord.Verify(ctx, p)
		if err != nil {
			r.Valid = false
			r.Error = err.Error()
		} else {
			r.Warnings = issues(diags.Warnings)
			if opts.Strict && len(r.Warnings) > 0 {
				r.Valid = false
			}
		}

		if !r.Valid {
			failures++
		}

		results = append(results, r)
	}

	if err := cli.emit(results, func(w io.Writer) { printValidation(w, results) }); err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d catalogs failed validation", failures, len(results))
	}

	return nil
}

func issues(diags []diagnostic.Diagnostic) []validateIssue {
	out := make([]validateIssue, 0, len(diags))
	for _, d := range diags {
		out = append(out, validateIssue{Code: d.Code, Path: d.Path, Message: d.Message, Suggestions: d.Suggestions})
	}

	return out
}

func printValidation(w io.Writer, results []validateResult) {
	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s %s\n", failed("FAIL"), r.Provider)

			for _, line := range strings.Split(r.Error, "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		case !r.Valid:
			fmt.Fprintf(w, "%s %s (%d warnings)\n", failed("FAIL"), r.Provider, len(r.Warnings))
		case len(r.Warnings) > 0:
			fmt.Fprintf(w, "%s %s (%d warnings)\n", warning("WARN"), r.Provider, len(r.Warnings))
		default:
			fmt.Fprintf(w, "%s %s\n", success("OK"), r.Provider)
		}

		for _, issue := range r.Warnings {
			line := fmt.Sprintf("  [%s] %s: %s", issue.Code, issue.Path, issue.Message)
			if len(issue.Suggestions) > 0 {
				line += " (did you mean " + strings.Join(issue.Suggestions, ", ") + "?)"
			}

			fmt.Fprintln(w, warning(line))
		}
	}
}
