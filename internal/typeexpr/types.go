package typeexpr

import (
	"go/types"
)

// Type is a type expression backed by go/types.
type Type struct {
	T types.Type
}

// Of wraps t, returning nil for a nil type so callers can pass the result
// straight into resolvers.
func Of(t types.Type) Expr {
	if t == nil {
		return nil
	}
	return Type{T: t}
}

// Name renders the type with full package paths.
func (t Type) Name() string {
	if t.T == nil {
		return ""
	}
	return types.TypeString(t.T, nil)
}

// TypeArgs returns the type arguments of a generic instance. Pointers are
// looked through, so *Entity[Article] reports Article.
func (t Type) TypeArgs() []Expr {
	list := typeArgs(t.T)
	if list == nil || list.Len() == 0 {
		return nil
	}
	args := make([]Expr, list.Len())
	for i := 0; i < list.Len(); i++ {
		args[i] = Type{T: list.At(i)}
	}
	return args
}

func (t Type) String() string {
	return t.Name()
}

// GoType returns the go/types value behind expr, if there is one.
func GoType(expr Expr) (types.Type, bool) {
	switch e := expr.(type) {
	case Type:
		return e.T, e.T != nil
	case *Type:
		if e == nil || e.T == nil {
			return nil, false
		}
		return e.T, true
	}
	return nil, false
}

// Deref strips any number of pointer indirections.
func Deref(t types.Type) types.Type {
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			return t
		}
		t = ptr.Elem()
	}
}

func typeArgs(t types.Type) *types.TypeList {
	switch tt := Deref(t).(type) {
	case *types.Named:
		return tt.TypeArgs()
	case *types.Alias:
		if args := tt.TypeArgs(); args != nil && args.Len() > 0 {
			return args
		}
		return typeArgs(types.Unalias(tt))
	}
	return nil
}
