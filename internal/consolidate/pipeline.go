package consolidate

import (
	"errors"
	"go/types"
	"sort"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/schema"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// Config wires a Pipeline.
type Config struct {
	// Classifier maps types to strategies. Required.
	Classifier Classifier
	// Describer binds and describes types. Required.
	Describer domain.Describer
	// Base resolves ordinary types. Defaults to a schema.BuilderService.
	Base domain.Resolver
	// Definitions collects named models. Defaults to a fresh set.
	Definitions *schema.Definitions
	// EntityField is the wrapped value field skipped by the entity resolver.
	EntityField string
	// Resolvers replaces the default resolver of individual strategies.
	Resolvers map[domain.Strategy]domain.Resolver
}

// DefaultResolvers returns one resolver per strategy.
func DefaultResolvers(entityField string) map[domain.Strategy]domain.Resolver {
	return map[domain.Strategy]domain.Resolver{
		domain.Default:    DefaultResolver{},
		domain.DateTime:   DateTimeResolver{},
		domain.MapLike:    MapLikeResolver{},
		domain.WrapSingle: WrapSingleResolver{},
		domain.WrapArray:  WrapArrayResolver{},
		domain.Entity:     NewEntityResolver(entityField),
		domain.Nested:     NestedResolver{},
		domain.Page:       PageResolver{},
	}
}

// Pipeline resolves type expressions through the dispatcher and then the
// base resolver. It is safe for concurrent use; concurrent calls share the
// definitions.
type Pipeline struct {
	dispatcher  *Dispatcher
	chain       domain.Chain
	describer   domain.Describer
	definitions *schema.Definitions
}

// NewPipeline builds a pipeline from cfg.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if cfg.Classifier == nil {
		return nil, errors.New("consolidate: classifier is required")
	}
	if cfg.Describer == nil {
		return nil, errors.New("consolidate: describer is required")
	}
	if cfg.Base == nil {
		builder := schema.NewBuilder()
		if enums, ok := cfg.Describer.(schema.EnumLookup); ok {
			builder.SetEnumLookup(enums)
		}
		cfg.Base = builder
	}
	if cfg.Definitions == nil {
		cfg.Definitions = schema.NewDefinitions()
	}

	resolvers := DefaultResolvers(cfg.EntityField)
	for s, r := range cfg.Resolvers {
		resolvers[s] = r
	}

	dispatcher, err := NewDispatcher(cfg.Classifier, resolvers)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		dispatcher:  dispatcher,
		chain:       domain.NewChain(dispatcher, cfg.Base),
		describer:   cfg.Describer,
		definitions: cfg.Definitions,
	}, nil
}

// Dispatcher returns the head of the chain.
func (p *Pipeline) Dispatcher() *Dispatcher {
	return p.dispatcher
}

// Definitions returns the models registered so far.
func (p *Pipeline) Definitions() *schema.Definitions {
	return p.definitions
}

// ResolveModel resolves expr as a model. A nil expression resolves to nil.
func (p *Pipeline) ResolveModel(expr typeexpr.Expr) (*spec.Schema, error) {
	return p.newSession().ResolveModel(expr)
}

// ResolveProperty resolves expr as a property.
func (p *Pipeline) ResolveProperty(expr typeexpr.Expr, annotations domain.Annotations) (*spec.Schema, error) {
	return p.newSession().ResolveProperty(expr, annotations)
}

func (p *Pipeline) newSession() *session {
	return &session{
		pipeline: p,
		building: make(map[string]bool),
		resolved: make(map[string]*spec.Schema),
	}
}

// session is the domain.Context of one top-level call. It carries the
// recursion guard and a memo of finished resolutions, and is not shared
// between goroutines.
type session struct {
	pipeline *Pipeline
	building map[string]bool
	resolved map[string]*spec.Schema
	// refused counts Enter calls turned down by the recursion guard. A
	// resolution that saw a refusal is cut short and is not memoized.
	refused int
}

func (s *session) TypeOf(expr typeexpr.Expr) (types.Type, error) {
	return s.pipeline.describer.TypeOf(expr)
}

func (s *session) Fields(expr typeexpr.Expr) ([]field.Field, error) {
	return s.pipeline.describer.Fields(expr)
}

func (s *session) DefinitionName(t *types.Named) string {
	return s.pipeline.describer.DefinitionName(t)
}

func (s *session) Define(name string, model spec.Schema) bool {
	return s.pipeline.definitions.Define(name, model)
}

func (s *session) DefineFrom(origin, name string, model spec.Schema) bool {
	return s.pipeline.definitions.DefineFrom(origin, name, model)
}

func (s *session) Origin(name string) string {
	return s.pipeline.definitions.Origin(name)
}

func (s *session) Lookup(name string) (spec.Schema, bool) {
	return s.pipeline.definitions.Lookup(name)
}

func (s *session) ResolveModel(expr typeexpr.Expr) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}
	return s.memoize(memoKey("model", expr, nil), func() (*spec.Schema, error) {
		return s.pipeline.chain.ResolveModel(expr, s)
	})
}

func (s *session) ResolveProperty(expr typeexpr.Expr, annotations domain.Annotations) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}
	return s.memoize(memoKey("property", expr, annotations), func() (*spec.Schema, error) {
		return s.pipeline.chain.ResolveProperty(expr, s, annotations)
	})
}

// memoize returns the earlier result stored under key, or runs resolve and
// stores its result. Wrapper layers resolve their payload through the
// session, so a payload already folded in this call is not folded again.
func (s *session) memoize(key string, resolve func() (*spec.Schema, error)) (*spec.Schema, error) {
	if cached, ok := s.resolved[key]; ok {
		if cached == nil {
			return nil, nil
		}
		out := *cached
		return &out, nil
	}

	refused := s.refused
	result, err := resolve()
	if err == nil && s.refused == refused {
		if result == nil {
			s.resolved[key] = nil
		} else {
			stored := *result
			s.resolved[key] = &stored
		}
	}
	return result, err
}

func memoKey(kind string, expr typeexpr.Expr, annotations domain.Annotations) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte(0)
	b.WriteString(expr.Name())

	keys := make([]string, 0, len(annotations))
	for k := range annotations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(0)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(annotations[k])
	}
	return b.String()
}

func (s *session) Enter(name string) bool {
	if s.building[name] {
		s.refused++
		return false
	}
	s.building[name] = true
	return true
}

func (s *session) Leave(name string) {
	delete(s.building, name)
}

var _ domain.Context = (*session)(nil)
