package field

import (
	"go/types"
	"reflect"
)

// Naming strategy constants
const (
	// CamelCase indicates using CamelCase strategy for struct field.
	CamelCase = "camelcase"
	// PascalCase indicates using PascalCase strategy for struct field.
	PascalCase = "pascalcase"
	// SnakeCase indicates using SnakeCase strategy for struct field.
	SnakeCase = "snakecase"
)

// Tag names
const (
	requiredLabel    = "required"
	optionalLabel    = "optional"
	omitEmptyLabel   = "omitempty"
	swaggerTypeTag   = "swaggertype"
	swaggerIgnoreTag = "swaggerignore"
	jsonTag          = "json"
	bindingTag       = "binding"
	validateTag      = "validate"
)

// Field is one serialized field of a struct type.
type Field struct {
	// GoName is the declared identifier.
	GoName string
	// Name is the serialized property name.
	Name string
	Type types.Type
	// Collection is set for fields declared as a slice or an array.
	Collection bool
	Required   bool
	Tag        reflect.StructTag
}
