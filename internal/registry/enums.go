package registry

import (
	"go/constant"
	"go/types"
	"sort"
)

// EnumValues returns the package-level constants declared with type t, in
// source order. Only named basic types have enums.
func (s *Service) EnumValues(t *types.Named) []interface{} {
	if _, ok := t.Underlying().(*types.Basic); !ok {
		return nil
	}
	obj := t.Obj()
	if obj.Pkg() == nil {
		return nil
	}

	scope := obj.Pkg().Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(c.Type(), t) {
			continue
		}
		consts = append(consts, c)
	}
	sort.SliceStable(consts, func(i, j int) bool {
		return consts[i].Pos() < consts[j].Pos()
	})

	values := make([]interface{}, 0, len(consts))
	for _, c := range consts {
		values = append(values, constValue(c.Val()))
	}
	return values
}

func constValue(v constant.Value) interface{} {
	switch v.Kind() {
	case constant.Int:
		if i, ok := constant.Int64Val(v); ok {
			return i
		}
	case constant.Float:
		f, _ := constant.Float64Val(v)
		return f
	}
	return constant.Val(v)
}
