// Package diagnostic provides structured errors and warnings produced while
// loading catalogs and cross-checking them against the rendering toolkit.
//
// Key capabilities:
//   - Field-level schema errors naming the offending provider and entry
//   - Non-fatal warnings such as unknown categories or catalog drift
//   - Suggestions attached to a diagnostic for corrective action
package diagnostic
