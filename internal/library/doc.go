// Package library indexes the node classes the installed rendering toolkit
// actually exposes.
//
// The toolkit is reached through an Oracle, which answers "which public
// classes does module M define". An Index memoizes those answers per module
// path and offers a tiered class lookup:
//  1. case-insensitive exact
//  2. normalized exact (separators and vendor prefixes stripped)
//  3. substring containment in either direction
//  4. similarity at or above the cutoff
//
// Introspection failures are never returned to callers: a module that cannot
// be inspected is reported as empty.
package library
