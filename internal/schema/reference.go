package schema

import (
	"sort"
	"strings"

	"github.com/go-openapi/spec"
)

// DefinitionsPrefix starts every reference to a model.
const DefinitionsPrefix = "#/definitions/"

// RefSchema builds a reference schema.
func RefSchema(refType string) *spec.Schema {
	return spec.RefSchema(DefinitionsPrefix + refType)
}

// IsRefSchema determines whether a schema is a reference schema.
func IsRefSchema(schema *spec.Schema) bool {
	if schema == nil {
		return false
	}
	return schema.Ref.String() != ""
}

// RefName extracts the definition name from a $ref string like "#/definitions/ModelName".
func RefName(ref string) string {
	if len(ref) > len(DefinitionsPrefix) && strings.HasPrefix(ref, DefinitionsPrefix) {
		return ref[len(DefinitionsPrefix):]
	}
	return ""
}

// WithRef returns a copy of schema pointing at ref.
func WithRef(schema *spec.Schema, ref string) *spec.Schema {
	out := *schema
	out.Ref = spec.MustCreateRef(ref)
	return &out
}

// CollectRefs adds the definition name of every reference inside s to refs.
func CollectRefs(s *spec.Schema, refs map[string]struct{}) {
	if s == nil {
		return
	}
	if name := RefName(s.Ref.String()); name != "" {
		refs[name] = struct{}{}
	}
	if s.Items != nil {
		CollectRefs(s.Items.Schema, refs)
		for i := range s.Items.Schemas {
			CollectRefs(&s.Items.Schemas[i], refs)
		}
	}
	if s.AdditionalProperties != nil {
		CollectRefs(s.AdditionalProperties.Schema, refs)
	}
	for name := range s.Properties {
		prop := s.Properties[name]
		CollectRefs(&prop, refs)
	}
	for i := range s.AllOf {
		CollectRefs(&s.AllOf[i], refs)
	}
}

// DanglingRefs lists, sorted, the names referenced from definitions that
// have no definition of their own.
func DanglingRefs(definitions spec.Definitions) []string {
	refs := make(map[string]struct{})
	for name := range definitions {
		def := definitions[name]
		CollectRefs(&def, refs)
	}

	var dangling []string
	for name := range refs {
		if _, ok := definitions[name]; !ok {
			dangling = append(dangling, name)
		}
	}
	sort.Strings(dangling)
	return dangling
}
