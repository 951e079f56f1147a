package domain

import (
	"go/types"
	"reflect"

	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/parser/field"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// Annotations are the tag values of the field being resolved. Resolvers pass
// them along; only the base builder reads them.
type Annotations map[string]string

// AnnotationsFromTag collects every key of a struct tag.
func AnnotationsFromTag(tag reflect.StructTag) Annotations {
	if tag == "" {
		return nil
	}
	return Annotations(field.TagValues(tag))
}

// Get returns the value for key, or "".
func (a Annotations) Get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Describer binds type expressions to loaded Go types and describes them.
type Describer interface {
	// TypeOf binds expr to a go/types type.
	TypeOf(expr typeexpr.Expr) (types.Type, error)
	// Fields lists the serialized fields of the struct type behind expr.
	Fields(expr typeexpr.Expr) ([]field.Field, error)
	// DefinitionName is the name a named type is registered under.
	DefinitionName(t *types.Named) string
}

// Context is what a resolver sees of the resolution in progress: the
// scan-wide definitions, the type describer and the full pipeline for
// resolving other types.
type Context interface {
	Describer

	// Define registers schema under name unless name is already taken.
	// It reports whether the definition was added.
	Define(name string, schema spec.Schema) bool
	// DefineFrom is Define for a model derived from the definition origin
	// refers to.
	DefineFrom(origin, name string, schema spec.Schema) bool
	// Origin returns the origin name was registered with, or "".
	Origin(name string) string
	// Lookup returns a registered definition.
	Lookup(name string) (spec.Schema, bool)

	// ResolveModel runs expr through the whole pipeline as a model.
	ResolveModel(expr typeexpr.Expr) (*spec.Schema, error)
	// ResolveProperty runs expr through the whole pipeline as a property.
	ResolveProperty(expr typeexpr.Expr, annotations Annotations) (*spec.Schema, error)

	// Enter marks name as being built by the current call and reports
	// false if it already was. Every successful Enter is paired with Leave.
	Enter(name string) bool
	Leave(name string)
}
