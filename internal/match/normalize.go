package match

import (
	"strings"
	"unicode"
)

// vendorPrefixes are leading tokens that carry no identity of their own.
// Longer prefixes come first so "amazon" is tried before "aws".
var vendorPrefixes = []string{"microsoft", "amazon", "google", "azure", "cloud", "aws", "gcp"}

// NormalizeIdent normalizes an identifier for fuzzy matching.
// The normalization pipeline:
// 1. Tokenize CamelCase.
// 2. Case-fold to lower.
// 3. Strip separators (_, -, spaces, dots).
func NormalizeIdent(s string) string {
	tokens := tokenizeCamelCase(s)

	joined := strings.Join(tokens, "")
	joined = strings.ToLower(joined)

	return stripSeparators(joined)
}

// StripVendorPrefix removes one leading vendor token from a normalized
// identifier. The identifier is returned unchanged when stripping would leave
// nothing behind.
func StripVendorPrefix(normalized string) string {
	for _, prefix := range vendorPrefixes {
		if strings.HasPrefix(normalized, prefix) && len(normalized) > len(prefix) {
			return strings.TrimPrefix(normalized, prefix)
		}
	}

	return normalized
}

// TokenizeIdent splits an identifier into normalized lowercase tokens.
//   - "PublicSubnet" -> ["public", "subnet"]
//   - "api-gateway"  -> ["api", "gateway"]
//   - "ElastiCache"  -> ["elasti", "cache"]
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// Words splits free text (descriptions, display names) into lowercase words.
// Unlike TokenizeIdent it does not split on case changes.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "APIGateway" -> ["API", "Gateway"]
//   - "cloudSql" -> ["cloud", "Sql"]
//   - "EC2Instance" -> ["EC2", "Instance"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/' || unicode.IsSpace(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "subnetId" -> split before 'I'; "EC2Instance" -> split before 'I'
	if !unicode.IsUpper(prev) {
		return true
	}

	// End of acronym: "APIGateway" -> "API" + "Gateway"
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
