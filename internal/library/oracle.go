package library

import (
	"errors"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ErrModuleNotFound is returned by oracles for module paths the toolkit does
// not provide.
var ErrModuleNotFound = errors.New("toolkit module not found")

// Oracle reports the public class names defined, or deliberately
// re-exported, by a toolkit module.
type Oracle interface {
	Discover(modulePath string) (sets.Set[string], error)
}

// DirectLookup is implemented by oracles that can tell whether a name is
// reachable by direct access on a module even when discovery omits it.
type DirectLookup interface {
	HasExport(modulePath, name string) bool
}

// FuncOracle adapts a function to the Oracle interface.
type FuncOracle func(modulePath string) (sets.Set[string], error)

// Discover implements Oracle.
func (f FuncOracle) Discover(modulePath string) (sets.Set[string], error) {
	return f(modulePath)
}
