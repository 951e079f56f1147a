package field

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
)

// ErrNotStruct is returned when fields are requested for a non-struct type.
var ErrNotStruct = errors.New("not a struct type")

type candidate struct {
	Field
	depth int
}

// StructFields lists the serialized fields of t in declaration order,
// following encoding/json visibility: unexported fields are dropped,
// embedded structs without a json name are flattened and a shallower field
// hides a deeper one with the same name.
func StructFields(t types.Type, namingStrategy string) ([]Field, error) {
	st, ok := structOf(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, types.TypeString(t, nil))
	}

	var all []candidate
	collect(st, namingStrategy, 0, map[*types.Struct]bool{}, &all)

	shallowest := make(map[string]int, len(all))
	for _, c := range all {
		if depth, ok := shallowest[c.Name]; !ok || c.depth < depth {
			shallowest[c.Name] = c.depth
		}
	}

	fields := make([]Field, 0, len(all))
	emitted := make(map[string]bool, len(all))
	for _, c := range all {
		if c.depth != shallowest[c.Name] || emitted[c.Name] {
			continue
		}
		emitted[c.Name] = true
		fields = append(fields, c.Field)
	}
	return fields, nil
}

func collect(st *types.Struct, namingStrategy string, depth int, visiting map[*types.Struct]bool, out *[]candidate) {
	if visiting[st] {
		return
	}
	visiting[st] = true
	defer delete(visiting, st)

	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))
		if ShouldSkip(tag) {
			continue
		}

		name := JSONName(tag)
		if v.Embedded() && name == "" {
			if embedded, ok := structOf(v.Type()); ok {
				collect(embedded, namingStrategy, depth+1, visiting, out)
				continue
			}
		}
		if !v.Exported() {
			continue
		}
		if name == "" {
			name = ApplyNamingStrategy(v.Name(), namingStrategy)
		}

		*out = append(*out, candidate{
			Field: Field{
				GoName:     v.Name(),
				Name:       name,
				Type:       v.Type(),
				Collection: IsCollection(v.Type()),
				Required:   IsRequired(tag, false),
				Tag:        tag,
			},
			depth: depth,
		})
	}
}

// IsCollection reports whether t is declared as a slice or an array.
// Byte slices serialize as strings and do not count.
func IsCollection(t types.Type) bool {
	var elem types.Type
	switch u := t.Underlying().(type) {
	case *types.Slice:
		elem = u.Elem()
	case *types.Array:
		elem = u.Elem()
	default:
		return false
	}
	if basic, ok := elem.Underlying().(*types.Basic); ok && basic.Kind() == types.Byte {
		return false
	}
	return true
}

func structOf(t types.Type) (*types.Struct, bool) {
	if ptr, ok := t.Underlying().(*types.Pointer); ok {
		t = ptr.Elem()
	}
	st, ok := t.Underlying().(*types.Struct)
	return st, ok
}
