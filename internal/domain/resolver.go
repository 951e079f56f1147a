package domain

import (
	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// Resolver turns a type expression into a model schema or a property schema.
//
// chain holds the resolvers after this one. A resolver that does not handle a
// type hands it to chain; an empty chain resolves to nil.
type Resolver interface {
	ResolveModel(expr typeexpr.Expr, ctx Context, chain Chain) (*spec.Schema, error)
	ResolveProperty(expr typeexpr.Expr, ctx Context, annotations Annotations, chain Chain) (*spec.Schema, error)
}

// Layer is one level of a nested type expression with its classification.
type Layer struct {
	Expr     typeexpr.Expr
	Strategy Strategy
}

// Chain is an ordered list of fallback resolvers and the position of the
// next one to try. Chains are values: advancing returns a new Chain, so the
// same chain can be replayed for sibling resolutions.
type Chain struct {
	resolvers []Resolver
	index     int
}

// NewChain builds a chain starting at the first resolver.
func NewChain(resolvers ...Resolver) Chain {
	return Chain{resolvers: resolvers}
}

// Len is the number of resolvers left.
func (c Chain) Len() int {
	if c.index >= len(c.resolvers) {
		return 0
	}
	return len(c.resolvers) - c.index
}

// Next returns the next resolver and the chain that follows it.
func (c Chain) Next() (Resolver, Chain, bool) {
	if c.Len() == 0 {
		return nil, c, false
	}
	return c.resolvers[c.index], Chain{resolvers: c.resolvers, index: c.index + 1}, true
}

// ResolveModel hands expr to the next resolver.
func (c Chain) ResolveModel(expr typeexpr.Expr, ctx Context) (*spec.Schema, error) {
	next, rest, ok := c.Next()
	if !ok {
		return nil, nil
	}
	return next.ResolveModel(expr, ctx, rest)
}

// ResolveProperty hands expr to the next resolver.
func (c Chain) ResolveProperty(expr typeexpr.Expr, ctx Context, annotations Annotations) (*spec.Schema, error) {
	next, rest, ok := c.Next()
	if !ok {
		return nil, nil
	}
	return next.ResolveProperty(expr, ctx, annotations, rest)
}
