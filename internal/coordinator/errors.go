package coordinator

import (
	"errors"
	"fmt"
	"strings"

	"component-resolver/internal/provider"
)

var (
	// ErrUnsupportedProvider matches UnsupportedProviderError.
	ErrUnsupportedProvider = errors.New("unsupported provider")
	// ErrClassNotFound matches a Failure of kind FailureClassNotFound.
	ErrClassNotFound = errors.New("class not found")
	// ErrNoMatch matches a Failure of kind FailureNoMatch.
	ErrNoMatch = errors.New("no match")
)

// UnsupportedProviderError rejects a request for an unknown provider.
type UnsupportedProviderError struct {
	Provider  string
	Supported []string
}

// Error implements error.
func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %q (supported: %s)", e.Provider, strings.Join(e.Supported, ", "))
}

// Unwrap returns ErrUnsupportedProvider.
func (e *UnsupportedProviderError) Unwrap() error { return ErrUnsupportedProvider }

// FailureKind classifies a recoverable resolution failure.
type FailureKind string

const (
	// FailureClassNotFound: the catalog maps the term to a class the toolkit
	// does not expose.
	FailureClassNotFound FailureKind = "class_not_found"
	// FailureNoMatch: no strategy produced a class.
	FailureNoMatch FailureKind = "no_match"
)

// Failure is a recoverable resolution failure carrying enough detail for the
// caller to retry with a corrected term.
type Failure struct {
	Kind        FailureKind       `json:"kind" yaml:"kind"`
	Provider    provider.Provider `json:"provider" yaml:"provider"`
	RequestedID string            `json:"requested_id" yaml:"requested_id"`
	// NodeID is the term after remapping and disambiguation.
	NodeID              string   `json:"node_id" yaml:"node_id"`
	AttemptedStrategies []string `json:"attempted_strategies" yaml:"attempted_strategies"`

	// ModulePath and ClassName are the declared mapping (class_not_found).
	ModulePath string `json:"module_path,omitempty" yaml:"module_path,omitempty"`
	ClassName  string `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	// Alternatives are similar classes of the same module (class_not_found).
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`

	// Suggestions are ranked candidates (no_match).
	Suggestions []Suggestion `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	// Available lists classes per category, capped (no_match).
	Available []CategoryClasses `json:"available,omitempty" yaml:"available,omitempty"`
}

// Error implements error.
func (f *Failure) Error() string {
	var b strings.Builder

	switch f.Kind {
	case FailureClassNotFound:
		fmt.Fprintf(&b, "class %q for node %q is not exposed by %s (%s)", f.ClassName, f.NodeID, f.ModulePath, f.Provider)

		if len(f.Alternatives) > 0 {
			fmt.Fprintf(&b, "; alternatives: %s", strings.Join(f.Alternatives, ", "))
		}
	default:
		fmt.Fprintf(&b, "no match for %q (%s) after %s", f.RequestedID, f.Provider, strings.Join(f.AttemptedStrategies, ", "))

		if len(f.Suggestions) > 0 {
			names := make([]string, 0, len(f.Suggestions))
			for _, s := range f.Suggestions {
				names = append(names, s.label())
			}

			fmt.Fprintf(&b, "; did you mean: %s", strings.Join(names, ", "))
		}
	}

	return b.String()
}

// Is matches the sentinel of the failure kind.
func (f *Failure) Is(target error) bool {
	switch f.Kind {
	case FailureClassNotFound:
		return target == ErrClassNotFound
	case FailureNoMatch:
		return target == ErrNoMatch
	default:
		return false
	}
}

func (s Suggestion) label() string {
	if s.NodeID != "" {
		return s.NodeID
	}

	return s.ModulePath + "." + s.ClassName
}
