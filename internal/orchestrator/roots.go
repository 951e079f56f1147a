package orchestrator

import (
	"fmt"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// root is a requested type bound to the loaded packages.
type root struct {
	name string
	expr typeexpr.Expr
}

// CollectRootTypes returns the full names of the exported, non-generic
// named types declared in pkgs, sorted.
func CollectRootTypes(pkgs []*packages.Package) []string {
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if pkg == nil || pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() || obj.IsAlias() {
				continue
			}
			if named, ok := obj.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
				continue
			}
			seen[pkg.PkgPath+"."+obj.Name()] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bindRoots turns the requested names into go/types expressions so they are
// classified by their full names however they were written.
func (s *Service) bindRoots(typeNames []string) ([]root, error) {
	roots := make([]root, 0, len(typeNames))
	for _, name := range typeNames {
		t, err := s.registry.TypeOf(typeexpr.Parse(name))
		if err != nil {
			return nil, fmt.Errorf("failed to bind root type %s: %w", name, err)
		}
		roots = append(roots, root{name: name, expr: typeexpr.Of(t)})
	}
	return roots, nil
}
