package library

import (
	"fmt"
	"go/types"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/tools/go/packages"
	"k8s.io/apimachinery/pkg/util/sets"
)

// packagesLoadMode only needs the type-checked package scope.
const packagesLoadMode = packages.NeedName | packages.NeedTypes

// PackagesOracle introspects a Go rendering toolkit with go/packages. Module
// path M maps to the import path Root/M.
type PackagesOracle struct {
	// Root is the import path prefix of the toolkit, e.g. "example.com/diagrams".
	Root string
	// Dir is the working directory packages are loaded from. Empty means the
	// current directory.
	Dir string

	mu    sync.Mutex
	cache map[string]*types.Package
	group singleflight.Group
}

// NewPackagesOracle returns an oracle loading toolkit packages under root.
func NewPackagesOracle(root, dir string) *PackagesOracle {
	return &PackagesOracle{
		Root:  strings.TrimSuffix(root, "/"),
		Dir:   dir,
		cache: make(map[string]*types.Package),
	}
}

// Discover implements Oracle. It returns the exported type names declared by
// the package, plus exported aliases of types that live elsewhere in the
// toolkit (deliberate re-exports).
func (o *PackagesOracle) Discover(modulePath string) (sets.Set[string], error) {
	pkg, err := o.load(modulePath)
	if err != nil {
		return nil, err
	}

	classes := sets.New[string]()
	scope := pkg.Scope()

	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		if typeName.IsAlias() && !o.ownedByToolkit(typeName.Type()) {
			continue
		}

		classes.Insert(name)
	}

	return classes, nil
}

// HasExport implements DirectLookup. Any exported package-level object counts.
func (o *PackagesOracle) HasExport(modulePath, name string) bool {
	pkg, err := o.load(modulePath)
	if err != nil {
		return false
	}

	obj := pkg.Scope().Lookup(name)

	return obj != nil && obj.Exported()
}

func (o *PackagesOracle) importPath(modulePath string) string {
	if o.Root == "" {
		return modulePath
	}

	return path.Join(o.Root, modulePath)
}

func (o *PackagesOracle) ownedByToolkit(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}

	pkgPath := named.Obj().Pkg().Path()

	return o.Root == "" || pkgPath == o.Root || strings.HasPrefix(pkgPath, o.Root+"/")
}

func (o *PackagesOracle) load(modulePath string) (*types.Package, error) {
	importPath := o.importPath(modulePath)

	o.mu.Lock()
	if pkg, ok := o.cache[importPath]; ok {
		o.mu.Unlock()
		return pkg, nil
	}
	o.mu.Unlock()

	v, err, _ := o.group.Do(importPath, func() (interface{}, error) {
		cfg := &packages.Config{
			Mode: packagesLoadMode,
			Dir:  o.Dir,
		}

		pkgs, err := packages.Load(cfg, importPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load package %s: %w", importPath, err)
		}

		if len(pkgs) != 1 {
			return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, importPath)
		}

		pkg := pkgs[0]
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s: %v", ErrModuleNotFound, importPath, pkg.Errors[0])
		}

		if pkg.Types == nil {
			return nil, fmt.Errorf("%w: %s: no type information", ErrModuleNotFound, importPath)
		}

		o.mu.Lock()
		if o.cache == nil {
			o.cache = make(map[string]*types.Package)
		}
		o.cache[importPath] = pkg.Types
		o.mu.Unlock()

		return pkg.Types, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*types.Package), nil
}
