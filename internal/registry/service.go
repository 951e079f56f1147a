// Package registry indexes the named types of loaded packages and binds type
// expressions to them.
package registry

import (
	"fmt"
	"go/types"
	"sort"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/hexamon/hexaswag/internal/console"
	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// Service indexes package-level type names.
//
// Every package reachable from the added ones can be looked up, but only the
// added packages (and their dependencies with SetParseDependency) take part
// in deciding whether a simple type name is unique.
type Service struct {
	mu sync.RWMutex

	packages        map[string]*packages.Package
	types           map[string]*types.TypeName
	simpleNames     map[string]map[string]bool
	parseDependency bool
	namingStrategy  string
	debug           Debugger
}

// NewService creates a new registry service.
func NewService() *Service {
	return &Service{
		packages:       make(map[string]*packages.Package),
		types:          make(map[string]*types.TypeName),
		simpleNames:    make(map[string]map[string]bool),
		namingStrategy: field.CamelCase,
	}
}

// SetParseDependency makes imported packages count for name uniqueness.
func (s *Service) SetParseDependency(parse bool) {
	s.parseDependency = parse
}

// SetNamingStrategy sets the property naming strategy for untagged fields.
func (s *Service) SetNamingStrategy(strategy string) {
	if strategy == "" {
		strategy = field.CamelCase
	}
	s.namingStrategy = strategy
}

// SetDebugger sets the debugger.
func (s *Service) SetDebugger(debug Debugger) {
	s.debug = debug
}

// AddPackages stores packages.Package to registry, with their imports.
func (s *Service) AddPackages(pkgs []*packages.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pkg := range pkgs {
		s.addPackage(pkg, true)
	}
}

func (s *Service) addPackage(pkg *packages.Package, primary bool) {
	if pkg == nil || pkg.Types == nil {
		return
	}
	if _, ok := s.packages[pkg.PkgPath]; ok && !primary {
		return
	}
	s.packages[pkg.PkgPath] = pkg

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}
		s.types[fullName(obj)] = obj
		if (primary || s.parseDependency) && obj.Exported() {
			if s.simpleNames[obj.Name()] == nil {
				s.simpleNames[obj.Name()] = make(map[string]bool)
			}
			s.simpleNames[obj.Name()][pkg.PkgPath] = true
		}
		if primary {
			s.checkJSONMarshal(pkg, obj)
		}
	}

	for _, dep := range pkg.Imports {
		s.addPackage(dep, false)
	}
}

func (s *Service) checkJSONMarshal(pkg *packages.Package, obj *types.TypeName) {
	methodSet := types.NewMethodSet(types.NewPointer(obj.Type()))
	if methodSet.Lookup(pkg.Types, "MarshalJSON") != nil {
		console.Logger.Debug("warning: %s.%s has MarshalJSON method, may need special handling", pkg.PkgPath, obj.Name())
	}
}

// Package returns a known package by import path.
func (s *Service) Package(path string) (*packages.Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pkg, ok := s.packages[path]
	return pkg, ok
}

// FindTypeByName finds a type by its full name ("github.com/acme/blog/model.Article"),
// its package-qualified name ("model.Article") or, when unique, its simple name.
func (s *Service) FindTypeByName(name string) (*types.TypeName, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if obj, ok := s.types[name]; ok {
		return obj, true
	}

	var matches []*types.TypeName
	for _, obj := range s.types {
		if obj.Pkg() == nil {
			continue
		}
		if obj.Pkg().Name()+"."+obj.Name() == name || (obj.Name() == name && s.isUniqueLocked(obj)) {
			matches = append(matches, obj)
		}
	}
	if len(matches) != 1 {
		return nil, false
	}
	return matches[0], true
}

// IsUnique reports whether no other indexed package declares a type with
// the same simple name.
func (s *Service) IsUnique(obj *types.TypeName) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isUniqueLocked(obj)
}

func (s *Service) isUniqueLocked(obj *types.TypeName) bool {
	return len(s.simpleNames[obj.Name()]) <= 1
}

// NotUniqueNames lists simple names declared in more than one package.
func (s *Service) NotUniqueNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for name, pkgs := range s.simpleNames {
		if len(pkgs) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Fields implements domain.Describer.
func (s *Service) Fields(expr typeexpr.Expr) ([]field.Field, error) {
	t, err := s.TypeOf(expr)
	if err != nil {
		return nil, err
	}
	fields, err := field.StructFields(t, s.namingStrategy)
	if err != nil {
		return nil, fmt.Errorf("fields of %s: %w", expr.Name(), err)
	}
	if s.debug != nil {
		s.debug.Printf("%s: %d fields", expr.Name(), len(fields))
	}
	return fields, nil
}

func fullName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

var _ domain.Describer = (*Service)(nil)
