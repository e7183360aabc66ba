package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates the --output flag. Empty selects human output.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatHuman:
		return FormatHuman, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q (want human, json or yaml)", s)
	}
}

// emit writes v in the selected machine format, or calls human otherwise.
func (c *CLI) emit(v any, human func(w io.Writer)) error {
	switch c.format {
	case FormatJSON:
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(c.Out)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	default:
		human(c.Out)
		return nil
	}
}

var (
	label   = color.New(color.Faint).SprintFunc()
	success = color.New(color.FgGreen, color.Bold).SprintFunc()
	failed  = color.New(color.FgRed, color.Bold).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
)

// renderTable draws rows under headers with a rounded border.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(w, t.String())
}

func score(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
