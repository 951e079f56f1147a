package schema

import "strings"

const (
	entitySuffix = "Entity"
	nestedSuffix = "Nested"

	pageLiteral = "Page"
	pagePrefix  = "HexamonPage"
)

// EntitySuffix names the model materialized for an entity wrapper. Applied
// to a whole reference string it yields the reference of that model.
func EntitySuffix(name string) string {
	return name + entitySuffix
}

// NestedSuffix names the model materialized for a nested wrapper.
func NestedSuffix(name string) string {
	return name + nestedSuffix
}

// PageRename replaces every "Page" in ref with "HexamonPage". The replace is
// literal, so a model such as PageView is renamed as well.
func PageRename(ref string) string {
	return strings.ReplaceAll(ref, pageLiteral, pagePrefix)
}
