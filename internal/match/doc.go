// Package match provides identifier normalization, string similarity scoring
// and candidate ranking for component type resolution.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so "api-gateway", "api_gateway"
//     and "ApiGateway" compare equal
//   - StripVendorPrefix: drops leading vendor tokens such as "aws" or "azure"
//   - Levenshtein / LevenshteinNormalized: edit distance and its 0-1 similarity
//   - Ratio: difflib sequence matcher ratio (the default similarity)
//   - Rank / CloseMatches: ranked candidates against a similarity cutoff
package match
