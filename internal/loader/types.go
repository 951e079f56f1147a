package loader

import (
	"go/token"

	"golang.org/x/tools/go/packages"
)

// Service loads Go packages with full type information.
type Service struct {
	parseVendor   bool
	excludes      map[string]struct{}
	packagePrefix []string
	buildTags     []string
	debug         Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// LoadResult contains the results of loading packages
type LoadResult struct {
	// Packages are the packages found under the search directories, after
	// filtering. Their imports are loaded with them.
	Packages []*packages.Package
	// Skipped lists the import paths filtered out.
	Skipped []string
	FileSet *token.FileSet
}

// Option is a functional option for configuring Service
type Option func(*Service)

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
