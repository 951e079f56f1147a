// Package fixture type-checks small in-memory Go packages so resolver tests
// can work with real go/types values without touching the toolchain or the
// file system.
package fixture

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// Universe is a set of package sources checked on demand. It implements
// types.Importer over its own sources only.
type Universe struct {
	Fset *token.FileSet

	sources map[string]string
	checked map[string]*packages.Package
}

// New returns a Universe seeded with stand-ins for the standard library
// packages the default strategy table names, the hexamon wrappers and a
// small blog model.
func New() *Universe {
	u := &Universe{
		Fset:    token.NewFileSet(),
		sources: make(map[string]string),
		checked: make(map[string]*packages.Package),
	}
	for path, src := range stdSources {
		u.sources[path] = src
	}
	for path, src := range userSources {
		u.sources[path] = src
	}
	return u
}

// Add registers (or replaces) the source of a package.
func (u *Universe) Add(path, src string) {
	u.sources[path] = src
	delete(u.checked, path)
}

// Import implements types.Importer.
func (u *Universe) Import(path string) (*types.Package, error) {
	pkg, err := u.Package(path)
	if err != nil {
		return nil, err
	}
	return pkg.Types, nil
}

// Package parses and type-checks path, caching the result.
func (u *Universe) Package(path string) (*packages.Package, error) {
	if pkg, ok := u.checked[path]; ok {
		return pkg, nil
	}

	src, ok := u.sources[path]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown package %q", path)
	}

	file, err := parser.ParseFile(u.Fset, path+"/fixture.go", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Instances:  make(map[*ast.Ident]types.Instance),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
	}
	conf := types.Config{Importer: u}
	typesPkg, err := conf.Check(path, u.Fset, []*ast.File{file}, info)
	if err != nil {
		return nil, fmt.Errorf("fixture: check %s: %w", path, err)
	}

	imports := make(map[string]*packages.Package)
	for _, imp := range typesPkg.Imports() {
		if dep, ok := u.checked[imp.Path()]; ok {
			imports[imp.Path()] = dep
		}
	}

	pkg := &packages.Package{
		ID:        path,
		Name:      typesPkg.Name(),
		PkgPath:   path,
		Fset:      u.Fset,
		Syntax:    []*ast.File{file},
		Types:     typesPkg,
		TypesInfo: info,
		Imports:   imports,
	}
	u.checked[path] = pkg
	return pkg, nil
}

// Packages checks every listed path, or the blog model package when none are
// given.
func (u *Universe) Packages(paths ...string) ([]*packages.Package, error) {
	if len(paths) == 0 {
		paths = []string{ModelPath}
	}

	pkgs := make([]*packages.Package, 0, len(paths))
	for _, path := range paths {
		pkg, err := u.Package(path)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Lookup finds a package-level object.
func (u *Universe) Lookup(path, name string) (types.Object, error) {
	pkg, err := u.Package(path)
	if err != nil {
		return nil, err
	}
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("fixture: %s.%s not found", path, name)
	}
	return obj, nil
}

// MustType returns the type of a package-level var or type name.
func (u *Universe) MustType(t testing.TB, path, name string) types.Type {
	t.Helper()

	obj, err := u.Lookup(path, name)
	require.NoError(t, err)
	return obj.Type()
}

// MustModel is MustType for the blog model package.
func (u *Universe) MustModel(t testing.TB, name string) types.Type {
	t.Helper()
	return u.MustType(t, ModelPath, name)
}

// MustPackages is Packages for tests.
func (u *Universe) MustPackages(t testing.TB, paths ...string) []*packages.Package {
	t.Helper()

	pkgs, err := u.Packages(paths...)
	require.NoError(t, err)
	return pkgs
}
