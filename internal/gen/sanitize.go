package gen

import (
	"math"

	"github.com/go-openapi/spec"
)

// sanitizeDefinitions removes infinity and NaN values from every definition.
func sanitizeDefinitions(definitions spec.Definitions) {
	for name := range definitions {
		def := definitions[name]
		sanitizeSchema(&def)
		definitions[name] = def
	}
}

func invalid(f *float64) bool {
	return f != nil && (math.IsInf(*f, 0) || math.IsNaN(*f))
}

func invalidValue(v interface{}) bool {
	f, ok := v.(float64)
	return ok && (math.IsInf(f, 0) || math.IsNaN(f))
}

// sanitizeSchema recursively sanitizes a schema
func sanitizeSchema(schema *spec.Schema) {
	if schema == nil {
		return
	}

	// Sanitize numeric constraints
	if invalid(schema.Minimum) {
		schema.Minimum = nil
	}
	if invalid(schema.Maximum) {
		schema.Maximum = nil
	}
	if invalid(schema.MultipleOf) {
		schema.MultipleOf = nil
	}
	if invalidValue(schema.Default) {
		schema.Default = nil
	}
	if invalidValue(schema.Example) {
		schema.Example = nil
	}

	if len(schema.Enum) > 0 {
		enum := schema.Enum[:0]
		for _, v := range schema.Enum {
			if !invalidValue(v) {
				enum = append(enum, v)
			}
		}
		schema.Enum = enum
	}

	// Recursively sanitize properties
	for k := range schema.Properties {
		propSchema := schema.Properties[k]
		sanitizeSchema(&propSchema)
		schema.Properties[k] = propSchema
	}

	// Sanitize array items
	if schema.Items != nil {
		sanitizeSchema(schema.Items.Schema)
		for i := range schema.Items.Schemas {
			sanitizeSchema(&schema.Items.Schemas[i])
		}
	}

	for i := range schema.AllOf {
		sanitizeSchema(&schema.AllOf[i])
	}

	if schema.AdditionalProperties != nil {
		sanitizeSchema(schema.AdditionalProperties.Schema)
	}
}
