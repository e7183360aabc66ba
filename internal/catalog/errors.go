package catalog

import (
	"errors"
	"fmt"

	"component-resolver/internal/diagnostic"
	"component-resolver/internal/provider"
)

var (
	// ErrCatalogMissing is reported when no catalog document exists for a provider.
	ErrCatalogMissing = errors.New("catalog missing")
	// ErrCatalogMalformed is reported when a document cannot be parsed or fails validation.
	ErrCatalogMalformed = errors.New("catalog malformed")
)

// LoadError describes why a provider's catalog could not be loaded.
type LoadError struct {
	Provider provider.Provider
	Source   string
	// Kind is ErrCatalogMissing or ErrCatalogMalformed.
	Kind error
	// Cause is the underlying read or parse error, if any.
	Cause error
	// Diagnostics holds field-level schema errors, if any.
	Diagnostics *diagnostic.Diagnostics
}

// Error implements error.
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%v: provider %s (%s)", e.Kind, e.Provider, e.Source)

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	if e.Diagnostics != nil && e.Diagnostics.HasErrors() {
		msg += ": " + e.Diagnostics.Err().Error()
	}

	return msg
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *LoadError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}
