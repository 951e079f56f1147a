// Package orchestrator coordinates all services to generate the definitions
// document. It loads packages, indexes their types and resolves the requested
// root types through the consolidation pipeline.
package orchestrator

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-openapi/spec"
	"golang.org/x/tools/go/packages"

	"github.com/hexamon/hexaswag/internal/console"
	"github.com/hexamon/hexaswag/internal/consolidate"
	"github.com/hexamon/hexaswag/internal/loader"
	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/registry"
	"github.com/hexamon/hexaswag/internal/schema"
	"github.com/hexamon/hexaswag/internal/strategy"
)

// Service coordinates loading, indexing and resolution.
type Service struct {
	loader     *loader.Service
	registry   *registry.Service
	strategies *strategy.Registry
	swagger    *spec.Swagger
	config     *Config
}

// Config holds orchestrator configuration options.
type Config struct {
	ParseVendor        bool
	ParseDependency    bool
	PropNamingStrategy string
	Excludes           map[string]struct{}
	PackagePrefix      []string
	BuildTags          []string
	// StrategiesFile extends the default strategy table. A missing file is
	// not an error.
	StrategiesFile string
	// EntityField is the wrapped value field of entity wrappers.
	EntityField string
	// Concurrency bounds parallel root resolution. Defaults to the CPU count.
	Concurrency int
	Debug       Debugger
}

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new orchestrator service with the given configuration.
func New(config *Config) *Service {
	if config == nil {
		config = &Config{}
	}

	// Apply defaults for zero values
	if config.PropNamingStrategy == "" {
		config.PropNamingStrategy = field.CamelCase
	}
	if config.Excludes == nil {
		config.Excludes = make(map[string]struct{})
	}
	if config.PackagePrefix == nil {
		config.PackagePrefix = []string{}
	}
	if config.EntityField == "" {
		config.EntityField = consolidate.DefaultEntityField
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.NumCPU()
	}

	loaderService := loader.NewService(
		loader.WithParseVendor(config.ParseVendor),
		loader.WithExcludes(config.Excludes),
		loader.WithPackagePrefix(config.PackagePrefix),
		loader.WithBuildTags(config.BuildTags),
		loader.WithDebugger(config.Debug),
	)

	registryService := registry.NewService()
	registryService.SetParseDependency(config.ParseDependency)
	registryService.SetNamingStrategy(config.PropNamingStrategy)
	if config.Debug != nil {
		registryService.SetDebugger(config.Debug)
	}

	swagger := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Contact: &spec.ContactInfo{},
				},
			},
			Paths:       &spec.Paths{Paths: make(map[string]spec.PathItem)},
			Definitions: make(spec.Definitions),
		},
	}

	return &Service{
		loader:     loaderService,
		registry:   registryService,
		strategies: strategy.Default(),
		swagger:    swagger,
		config:     config,
	}
}

// Parse loads the search directories and resolves typeNames as models. With
// no type names every exported, non-generic type of the loaded packages is a
// root.
func (s *Service) Parse(ctx context.Context, searchDirs []string, typeNames []string) (*spec.Swagger, error) {
	s.debugf("Orchestrator: Starting parse with %d search dirs", len(searchDirs))

	// Step 1: Load packages
	s.debugf("Orchestrator: Step 1 - Loading packages")
	loadResult, err := s.loader.Load(ctx, searchDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to load search directories: %w", err)
	}
	s.debugf("Orchestrator: Loaded %d packages, skipped %d", len(loadResult.Packages), len(loadResult.Skipped))

	return s.Build(ctx, loadResult.Packages, typeNames)
}

// Build indexes already loaded packages and resolves typeNames against them.
func (s *Service) Build(ctx context.Context, pkgs []*packages.Package, typeNames []string) (*spec.Swagger, error) {
	// Step 2: Register types with registry
	s.debugf("Orchestrator: Step 2 - Registering types")
	s.registry.AddPackages(pkgs)
	if names := s.registry.NotUniqueNames(); len(names) > 0 {
		s.debugf("Orchestrator: %d type names are declared in several packages and use full-path names", len(names))
	}

	// Step 3: Strategy table
	if s.config.StrategiesFile != "" {
		found, err := s.strategies.LoadFile(s.config.StrategiesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load strategies: %w", err)
		}
		if found {
			s.debugf("Orchestrator: Step 3 - Loaded strategies from %s", s.config.StrategiesFile)
		}
	}

	pipeline, err := consolidate.NewPipeline(consolidate.Config{
		Classifier:  s.strategies,
		Describer:   s.registry,
		EntityField: s.config.EntityField,
	})
	if err != nil {
		return nil, err
	}

	// Step 4: Bind roots
	if len(typeNames) == 0 {
		typeNames = CollectRootTypes(pkgs)
	}
	roots, err := s.bindRoots(typeNames)
	if err != nil {
		return nil, err
	}

	// Step 5: Resolve roots (parallel)
	s.debugf("Orchestrator: Step 5 - Resolving %d roots (parallel, limit=%d)", len(roots), s.config.Concurrency)
	if err := s.resolveParallel(ctx, pipeline, roots); err != nil {
		return nil, err
	}

	definitions := pipeline.Definitions().Snapshot()
	for name, def := range definitions {
		s.swagger.Definitions[name] = def
	}
	s.debugf("Orchestrator: Built %d schema definitions", len(s.swagger.Definitions))

	// Step 6: Report references that point nowhere
	for _, name := range schema.DanglingRefs(s.swagger.Definitions) {
		console.Logger.Warn("warning: reference to undefined model %s", name)
	}

	s.debugf("Orchestrator: Parse complete")
	return s.swagger, nil
}

// GetSwagger returns the swagger specification.
func (s *Service) GetSwagger() *spec.Swagger {
	return s.swagger
}

// Registry returns the registry service for external access.
func (s *Service) Registry() *registry.Service {
	return s.registry
}

// Strategies returns the strategy table used by Parse.
func (s *Service) Strategies() *strategy.Registry {
	return s.strategies
}

func (s *Service) debugf(format string, v ...interface{}) {
	if s.config.Debug != nil {
		s.config.Debug.Printf(format, v...)
	}
}
