// Package loader loads the packages of the search directories with go/packages.
package loader

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedImports |
	packages.NeedDeps | packages.NeedTypes | packages.NeedTypesSizes | packages.NeedSyntax | packages.NeedTypesInfo

// Load loads every package under each search directory. Each directory is
// loaded from its own module, so search directories may belong to different
// modules. Packages that fail to type-check abort the load.
func (s *Service) Load(ctx context.Context, searchDirs []string) (*LoadResult, error) {
	if len(searchDirs) == 0 {
		return nil, errors.New("no search directories")
	}

	result := &LoadResult{FileSet: token.NewFileSet()}
	seen := make(map[string]struct{})

	for _, dir := range searchDirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(absDir); err != nil {
			return nil, fmt.Errorf("search dir %s: %w", dir, err)
		}

		cfg := &packages.Config{
			Context: ctx,
			Mode:    loadMode,
			Dir:     absDir,
			Fset:    result.FileSet,
		}
		if len(s.buildTags) > 0 {
			cfg.BuildFlags = []string{"-tags=" + strings.Join(s.buildTags, ",")}
		}

		pkgs, err := packages.Load(cfg, "./...")
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", dir, err)
		}
		if err := firstError(pkgs); err != nil {
			return nil, err
		}
		s.debug.Printf("loaded %d packages from %s", len(pkgs), absDir)

		for _, pkg := range pkgs {
			if _, ok := seen[pkg.PkgPath]; ok {
				continue
			}
			seen[pkg.PkgPath] = struct{}{}

			if s.skipPackage(pkg, absDir) {
				result.Skipped = append(result.Skipped, pkg.PkgPath)
				continue
			}
			result.Packages = append(result.Packages, pkg)
		}
	}

	return result, nil
}

func firstError(pkgs []*packages.Package) error {
	var err error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if err == nil && len(pkg.Errors) > 0 {
			err = pkg.Errors[0]
		}
	})
	return err
}

func (s *Service) skipPackage(pkg *packages.Package, root string) bool {
	if s.skipPackageByPrefix(pkg.PkgPath) {
		return true
	}
	if len(pkg.GoFiles) == 0 {
		return false
	}
	return s.skipDir(root, filepath.Dir(pkg.GoFiles[0]))
}

// skipDir checks every directory from root down to dir against the
// directory rules. The search directory itself is never skipped.
func (s *Service) skipDir(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return false
	}

	path := root
	for _, name := range strings.Split(rel, string(filepath.Separator)) {
		path = filepath.Join(path, name)
		if !s.parseVendor && name == "vendor" {
			return true
		}
		if name == "docs" {
			return true
		}
		if len(name) > 1 && name[0] == '.' && name != ".." {
			return true
		}
		if _, ok := s.excludes[path]; ok {
			return true
		}
	}
	return false
}

// skipPackageByPrefix checks if a package should be skipped based on prefix
func (s *Service) skipPackageByPrefix(pkgpath string) bool {
	if len(s.packagePrefix) == 0 {
		return false
	}
	for _, prefix := range s.packagePrefix {
		if strings.HasPrefix(pkgpath, prefix) {
			return false
		}
	}
	return true
}
