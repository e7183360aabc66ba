// Package main provides the CLI entrypoint for component-resolver.
//
// component-resolver maps loosely named architecture components onto the node
// classes of a diagram rendering toolkit:
//   - resolve a node_id for a provider, with optional display name and context
//   - suggest catalog entries for an unknown node_id
//   - list and filter catalog entries and toolkit classes
//   - validate catalogs against the toolkit
package main

import "component-resolver/cmd/component-resolver/internal/command"

func main() {
	command.Execute()
}
