// Package consolidate rewrites wrapper and domain types before they reach
// the base schema builder.
package consolidate

import (
	"fmt"

	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// Classifier tags a type expression with a strategy.
type Classifier interface {
	Classify(expr typeexpr.Expr) domain.Strategy
}

// Dispatcher splits a type expression into its generic layers and resolves
// them innermost first, each with the resolver of its own strategy.
type Dispatcher struct {
	classifier Classifier
	resolvers  map[domain.Strategy]domain.Resolver
}

// NewDispatcher fails with domain.ErrNoResolver unless every strategy has a
// resolver.
func NewDispatcher(classifier Classifier, resolvers map[domain.Strategy]domain.Resolver) (*Dispatcher, error) {
	for _, s := range domain.Strategies() {
		if resolvers[s] == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoResolver, s)
		}
	}

	d := &Dispatcher{
		classifier: classifier,
		resolvers:  make(map[domain.Strategy]domain.Resolver, len(resolvers)),
	}
	for s, r := range resolvers {
		d.resolvers[s] = r
	}
	return d, nil
}

// Layers decomposes expr outermost first:
//
//	Mono[Entity[Article]] -> [Mono[...] WrapSingle, Entity[Article] Entity, Article Default]
func (d *Dispatcher) Layers(expr typeexpr.Expr) []domain.Layer {
	var layers []domain.Layer
	for expr != nil {
		layers = append(layers, domain.Layer{Expr: expr, Strategy: d.classifier.Classify(expr)})
		inner, ok := typeexpr.FirstInner(expr)
		if !ok {
			break
		}
		expr = inner
	}
	return layers
}

// ResolveModel implements domain.Resolver.
func (d *Dispatcher) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	return d.fold(expr, func(r domain.Resolver, layer typeexpr.Expr) (*spec.Schema, error) {
		return r.ResolveModel(layer, ctx, chain)
	})
}

// ResolveProperty implements domain.Resolver.
func (d *Dispatcher) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	return d.fold(expr, func(r domain.Resolver, layer typeexpr.Expr) (*spec.Schema, error) {
		return r.ResolveProperty(layer, ctx, annotations, chain)
	})
}

// fold resolves the layers innermost first. Every resolver re-derives its
// inner type from its own layer, so each step's result replaces the previous
// one and the outermost layer's result is returned.
func (d *Dispatcher) fold(expr typeexpr.Expr, resolve func(domain.Resolver, typeexpr.Expr) (*spec.Schema, error)) (*spec.Schema, error) {
	layers := d.Layers(expr)

	var result *spec.Schema
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		r, ok := d.resolvers[layer.Strategy]
		if !ok || r == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoResolver, layer.Strategy)
		}

		schema, err := resolve(r, layer.Expr)
		if err != nil {
			return nil, err
		}
		result = schema
	}
	return result, nil
}
