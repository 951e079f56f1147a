// Package schema provides schema building and management functionality for OpenAPI schemas.
package schema

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/console"
	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// EnumLookup finds the declared constant values of a named type.
type EnumLookup interface {
	EnumValues(t *types.Named) []interface{}
}

// BuilderService is the base resolver: it turns ordinary Go types into
// schemas. Named structs become definitions and are returned as references;
// everything else is inlined.
type BuilderService struct {
	enumLookup EnumLookup
}

// NewBuilder creates a new BuilderService instance.
func NewBuilder() *BuilderService {
	return &BuilderService{}
}

// SetEnumLookup sets the enum lookup for enum type resolution
func (b *BuilderService) SetEnumLookup(enumLookup EnumLookup) {
	b.enumLookup = enumLookup
}

// ResolveModel implements domain.Resolver. The base builder is the end of
// the chain and never delegates.
func (b *BuilderService) ResolveModel(expr typeexpr.Expr, ctx domain.Context, _ domain.Chain) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}
	t, err := ctx.TypeOf(expr)
	if err != nil {
		return nil, err
	}
	return b.build(t, ctx)
}

// ResolveProperty implements domain.Resolver. A swaggertype annotation
// replaces the type's own schema.
func (b *BuilderService) ResolveProperty(expr typeexpr.Expr, ctx domain.Context, annotations domain.Annotations, _ domain.Chain) (*spec.Schema, error) {
	if expr == nil {
		return nil, nil
	}

	if custom := annotations.Get("swaggertype"); custom != "" {
		schema, err := BuildCustomSchema(strings.Split(custom, ","))
		if err != nil {
			return nil, fmt.Errorf("swaggertype %q on %s: %w", custom, expr.Name(), err)
		}
		return schema, nil
	}

	t, err := ctx.TypeOf(expr)
	if err != nil {
		return nil, err
	}
	return b.build(t, ctx)
}

func (b *BuilderService) build(t types.Type, ctx domain.Context) (*spec.Schema, error) {
	switch tt := t.(type) {
	case *types.Alias:
		return b.build(types.Unalias(tt), ctx)
	case *types.Pointer:
		return b.build(tt.Elem(), ctx)
	case *types.Basic:
		if !domain.IsGolangPrimitiveType(tt.Name()) {
			return unsupported(t), nil
		}
		return domain.TransToValidPrimitiveSchema(tt.Name()), nil
	case *types.Slice:
		return b.array(tt.Elem(), ctx)
	case *types.Array:
		return b.array(tt.Elem(), ctx)
	case *types.Map:
		value, err := ctx.ResolveProperty(typeexpr.Of(tt.Elem()), nil)
		if err != nil {
			return nil, err
		}
		return spec.MapProperty(orEmpty(value)), nil
	case *types.Interface:
		// any JSON value
		return &spec.Schema{}, nil
	case *types.Struct:
		return b.object(t, ctx)
	case *types.Named:
		return b.named(tt, ctx)
	}
	return unsupported(t), nil
}

func (b *BuilderService) array(elem types.Type, ctx domain.Context) (*spec.Schema, error) {
	if basic, ok := elem.Underlying().(*types.Basic); ok && basic.Kind() == types.Byte {
		return spec.StrFmtProperty("byte"), nil
	}

	items, err := ctx.ResolveProperty(typeexpr.Of(elem), nil)
	if err != nil {
		return nil, err
	}
	return spec.ArrayProperty(orEmpty(items)), nil
}

func (b *BuilderService) named(n *types.Named, ctx domain.Context) (*spec.Schema, error) {
	fullName := types.TypeString(n, nil)
	if domain.IsExtendedPrimitiveType(fullName) {
		return domain.TransToValidPrimitiveSchema(fullName), nil
	}

	if n.TypeParams().Len() > 0 && n.TypeArgs().Len() == 0 {
		console.Logger.Debug("generic type %s used without type arguments, using 'object' instead", fullName)
		return ObjectSchema(), nil
	}

	if _, ok := n.Underlying().(*types.Struct); !ok {
		if b.enumLookup != nil {
			if values := b.enumLookup.EnumValues(n); len(values) > 0 {
				schema, err := b.build(n.Underlying(), ctx)
				if err != nil {
					return nil, err
				}
				enum := *schema
				enum.Enum = values
				return &enum, nil
			}
		}
		return b.build(n.Underlying(), ctx)
	}

	name := ctx.DefinitionName(n)
	ref := RefSchema(name)
	if _, ok := ctx.Lookup(name); ok {
		return ref, nil
	}
	if !ctx.Enter(name) {
		// recursive type, the outer call registers it
		return ref, nil
	}
	defer ctx.Leave(name)

	schema, err := b.object(n, ctx)
	if err != nil {
		return nil, err
	}
	ctx.Define(name, *schema)
	return ref, nil
}

func (b *BuilderService) object(t types.Type, ctx domain.Context) (*spec.Schema, error) {
	fields, err := ctx.Fields(typeexpr.Of(t))
	if err != nil {
		return nil, err
	}

	schema := ObjectSchema()
	schema.Properties = make(spec.SchemaProperties, len(fields))
	for _, f := range fields {
		if err := AddField(schema, f, "", ctx); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// AddField resolves f through ctx and stores it on schema under
// prefix+f.Name, marking it required when its tags say so.
func AddField(schema *spec.Schema, f field.Field, prefix string, ctx domain.Context) error {
	prop, err := ctx.ResolveProperty(typeexpr.Of(f.Type), domain.AnnotationsFromTag(f.Tag))
	if err != nil {
		return fmt.Errorf("field %s: %w", f.GoName, err)
	}
	if schema.Properties == nil {
		schema.Properties = make(spec.SchemaProperties)
	}
	schema.Properties[prefix+f.Name] = *orEmpty(prop)
	if f.Required {
		schema.Required = append(schema.Required, prefix+f.Name)
	}
	return nil
}

func unsupported(t types.Type) *spec.Schema {
	console.Logger.Debug("Type definition of type '%s' is not supported yet. Using 'object' instead.", types.TypeString(t, nil))
	return ObjectSchema()
}

func orEmpty(schema *spec.Schema) *spec.Schema {
	if schema == nil {
		return &spec.Schema{}
	}
	return schema
}
