// Package provider defines the cloud providers a catalog can be scoped to.
package provider

import (
	"fmt"
	"strings"
)

// Provider identifies a cloud provider catalog.
type Provider string

const (
	AWS   Provider = "aws"
	Azure Provider = "azure"
	GCP   Provider = "gcp"
)

// Supported returns every supported provider in sorted order.
func Supported() []Provider {
	return []Provider{AWS, Azure, GCP}
}

// SupportedNames returns the supported providers as plain strings.
func SupportedNames() []string {
	out := make([]string, 0, 3)
	for _, p := range Supported() {
		out = append(out, string(p))
	}

	return out
}

// IsSupported reports whether p is a known provider.
func (p Provider) IsSupported() bool {
	switch p {
	case AWS, Azure, GCP:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Provider) String() string { return string(p) }

// Parse folds case and surrounding space and validates the result.
func Parse(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsSupported() {
		return p, fmt.Errorf("unsupported provider %q (supported: %s)", s, strings.Join(SupportedNames(), ", "))
	}

	return p, nil
}
