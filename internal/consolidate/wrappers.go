package consolidate

import (
	"fmt"

	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/console"
	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/schema"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// DefaultEntityField is the serialized name of the field holding the
// wrapped value of an entity.
const DefaultEntityField = "entity"

// EntityResolver materializes Entity[T] as a model named after T with an
// "Entity" suffix. The wrapper's own fields come first with an underscore
// prefix, then T's fields under their own names.
type EntityResolver struct {
	// SkipField is the serialized name of the wrapped value field.
	SkipField string
}

// NewEntityResolver returns an EntityResolver skipping skipField, or
// DefaultEntityField when empty.
func NewEntityResolver(skipField string) *EntityResolver {
	if skipField == "" {
		skipField = DefaultEntityField
	}
	return &EntityResolver{SkipField: skipField}
}

func (r *EntityResolver) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	return wrapperModel(expr, ctx, chain, schema.EntitySuffix, func(model *spec.Schema, inner typeexpr.Expr, _ string) error {
		wrapperFields, err := ctx.Fields(expr)
		if err != nil {
			return err
		}
		for _, f := range wrapperFields {
			if f.Name == r.SkipField {
				continue
			}
			if err := schema.AddField(model, f, "_", ctx); err != nil {
				return err
			}
		}

		payloadFields, err := ctx.Fields(inner)
		if err != nil {
			return err
		}
		for _, f := range payloadFields {
			if err := schema.AddField(model, f, "", ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *EntityResolver) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	return wrapperProperty(r, expr, ctx, annotations, chain, schema.EntitySuffix)
}

// NestedResolver materializes Nested[T] as a tree model named after T with a
// "Nested" suffix. Collection fields of the wrapper become arrays of the tree
// model itself, every other field takes T's property.
type NestedResolver struct{}

func (NestedResolver) ResolveModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain) (*spec.Schema, error) {
	return wrapperModel(expr, ctx, chain, schema.NestedSuffix, func(model *spec.Schema, inner typeexpr.Expr, name string) error {
		innerProp, err := ctx.ResolveProperty(inner, nil)
		if err != nil {
			return err
		}
		if innerProp == nil {
			innerProp = &spec.Schema{}
		}
		arrayProp := spec.ArrayProperty(schema.RefSchema(name))

		fields, err := ctx.Fields(expr)
		if err != nil {
			return err
		}
		for _, f := range fields {
			prop := innerProp
			if f.Collection {
				prop = arrayProp
			}
			model.Properties[f.Name] = *prop
			if f.Required {
				model.Required = append(model.Required, f.Name)
			}
		}
		return nil
	})
}

func (r NestedResolver) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain) (*spec.Schema, error) {
	return wrapperProperty(r, expr, ctx, annotations, chain, schema.NestedSuffix)
}

type populateFunc func(model *spec.Schema, inner typeexpr.Expr, name string) error

// wrapperModel resolves the base model of the wrapped type through chain
// and registers the suffixed model next to it. Wrappers without a type
// argument, or whose payload does not resolve to a reference, are left to
// the chain.
func wrapperModel(expr typeexpr.Expr, ctx domain.Context, chain domain.Chain, suffix func(string) string, populate populateFunc) (*spec.Schema, error) {
	inner, ok := typeexpr.FirstInner(expr)
	if !ok {
		return chain.ResolveModel(expr, ctx)
	}

	base, err := chain.ResolveModel(inner, ctx)
	if err != nil || !schema.IsRefSchema(base) {
		return base, err
	}

	ref := schema.WithRef(base, suffix(base.Ref.String()))
	name := schema.RefName(ref.Ref.String())
	if name == "" {
		return ref, nil
	}
	origin := base.Ref.String()
	if _, ok := ctx.Lookup(name); ok {
		if ctx.Origin(name) != origin {
			console.Logger.Debug("definition %s is declared by another type, %s refers to it instead of its own model", name, expr.Name())
		}
		return ref, nil
	}
	if !ctx.Enter(name) {
		return ref, nil
	}
	defer ctx.Leave(name)

	model := schema.ObjectSchema()
	model.Properties = make(spec.SchemaProperties)
	if baseModel, ok := ctx.Lookup(schema.RefName(origin)); ok {
		model.Description = baseModel.Description
		model.Title = baseModel.Title
		model.ExternalDocs = baseModel.ExternalDocs
		model.Example = baseModel.Example
	}

	if err := populate(model, inner, name); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	ctx.DefineFrom(origin, name, *model)
	return ref, nil
}

// wrapperProperty resolves the wrapped type's property through chain and,
// when it is a reference, points it at the suffixed model after making sure
// that model exists.
func wrapperProperty(r domain.Resolver, expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, chain domain.Chain, suffix func(string) string) (*spec.Schema, error) {
	inner, ok := typeexpr.FirstInner(expr)
	if !ok {
		return chain.ResolveProperty(expr, ctx, annotations)
	}

	prop, err := chain.ResolveProperty(inner, ctx, annotations)
	if err != nil || !schema.IsRefSchema(prop) {
		return prop, err
	}

	if _, err := r.ResolveModel(expr, ctx, chain); err != nil {
		return nil, err
	}
	return schema.WithRef(prop, suffix(prop.Ref.String())), nil
}
