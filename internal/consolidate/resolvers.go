package consolidate

import (
	"go/types"

	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/schema"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// DefaultResolver hands every type to the rest of the chain.
type DefaultResolver struct{}

func (DefaultResolver) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	return chain.ResolveModel(expr, ctx)
}

func (DefaultResolver) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	return chain.ResolveProperty(expr, ctx, annotations)
}

// DateTimeResolver renders calendar-time types as string/date-time without
// consulting the chain.
type DateTimeResolver struct{}

func (DateTimeResolver) ResolveModel(expr typeexpr.Expr, _ domain.Context, _ domain.Chain) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}
	return schema.DateTimeSchema(), nil
}

func (DateTimeResolver) ResolveProperty(expr typeexpr.Expr, _ domain.Context, _ domain.Annotations, _ domain.Chain) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}
	return schema.DateTimeSchema(), nil
}

// MapLikeResolver resolves opaque JSON objects as map[string]any.
type MapLikeResolver struct{}

// CanonicalMap is the type opaque JSON objects are resolved as.
var CanonicalMap = typeexpr.Of(types.NewMap(types.Typ[types.String], types.Universe.Lookup("any").Type()))

func (MapLikeResolver) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}
	return chain.ResolveModel(CanonicalMap, ctx)
}

func (MapLikeResolver) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}
	return chain.ResolveProperty(CanonicalMap, ctx, annotations)
}

// WrapSingleResolver resolves a single-value container as its payload.
type WrapSingleResolver struct{}

func (WrapSingleResolver) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	inner, ok := typeexpr.FirstInner(expr)
	if !ok {
		return chain.ResolveModel(expr, ctx)
	}
	return ctx.ResolveModel(inner)
}

func (WrapSingleResolver) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	inner, ok := typeexpr.FirstInner(expr)
	if !ok {
		return chain.ResolveProperty(expr, ctx, annotations)
	}
	return ctx.ResolveProperty(inner, annotations)
}

// WrapArrayResolver resolves a stream container as an array of its payload.
// The model of a stream is the model of its payload.
type WrapArrayResolver struct{}

func (WrapArrayResolver) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	inner, ok := typeexpr.FirstInner(expr)
	if !ok {
		return chain.ResolveModel(expr, ctx)
	}
	return ctx.ResolveModel(inner)
}

func (WrapArrayResolver) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	inner, ok := typeexpr.FirstInner(expr)
	if !ok {
		return chain.ResolveProperty(expr, ctx, annotations)
	}
	items, err := ctx.ResolveProperty(inner, annotations)
	if err != nil || items == nil {
		return items, err
	}
	return spec.ArrayProperty(items), nil
}

// PageResolver passes pages through the chain untouched and renames the
// resulting property reference with schema.PageRename. The renamed name is
// registered as a copy of the original model so the reference resolves.
type PageResolver struct{}

func (PageResolver) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	return chain.ResolveModel(expr, ctx)
}

func (PageResolver) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	prop, err := chain.ResolveProperty(expr, ctx, annotations)
	if err != nil || !schema.IsRefSchema(prop) {
		return prop, err
	}

	ref := prop.Ref.String()
	renamed := schema.PageRename(ref)
	if renamed == ref {
		return prop, nil
	}

	if model, ok := ctx.Lookup(schema.RefName(ref)); ok {
		if name := schema.RefName(renamed); name != "" {
			ctx.Define(name, model)
		}
	}
	return schema.WithRef(prop, renamed), nil
}
