package domain

import (
	"strings"

	"github.com/go-openapi/spec"
)

type primitive struct {
	typ    string
	format string
}

// basicPrimitives maps Go basic kinds to their swagger type and format.
var basicPrimitives = map[string]primitive{
	"int":     {"integer", ""},
	"uint":    {"integer", ""},
	"int8":    {"integer", "int32"},
	"uint8":   {"integer", "int32"},
	"byte":    {"integer", "int32"},
	"int16":   {"integer", "int32"},
	"uint16":  {"integer", "int32"},
	"int32":   {"integer", "int32"},
	"uint32":  {"integer", "int32"},
	"rune":    {"integer", "int32"},
	"int64":   {"integer", "int64"},
	"uint64":  {"integer", "int64"},
	"float32": {"number", "float"},
	"float64": {"number", "double"},
	"bool":    {"boolean", ""},
	"string":  {"string", ""},
}

// namedPrimitives are struct or array types that serialize as a scalar.
// Calendar types are not listed: the DateTime strategy owns them.
var namedPrimitives = map[string]primitive{
	"uuid.UUID":                             {"string", "uuid"},
	"github.com/google/uuid.UUID":           {"string", "uuid"},
	"github.com/gofrs/uuid.UUID":            {"string", "uuid"},
	"decimal.Decimal":                       {"number", ""},
	"github.com/shopspring/decimal.Decimal": {"number", ""},
}

// IsGolangPrimitiveType reports whether typeName is a Go basic type with a
// swagger equivalent.
func IsGolangPrimitiveType(typeName string) bool {
	_, ok := basicPrimitives[typeName]
	return ok
}

// IsExtendedPrimitiveType reports whether typeName, pointer or not, is a
// basic type or a named type documented as a scalar (uuid, decimal).
func IsExtendedPrimitiveType(typeName string) bool {
	_, ok := lookupPrimitive(typeName)
	return ok
}

// TransToValidPrimitiveSchema returns the scalar schema of typeName. Unknown
// names are used as the schema type verbatim.
func TransToValidPrimitiveSchema(typeName string) *spec.Schema {
	p, ok := lookupPrimitive(typeName)
	if !ok {
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{typeName}}}
	}
	return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{p.typ}, Format: p.format}}
}

func lookupPrimitive(typeName string) (primitive, bool) {
	name := strings.TrimLeft(typeName, "*")
	if p, ok := basicPrimitives[name]; ok {
		return p, true
	}
	p, ok := namedPrimitives[name]
	return p, ok
}
