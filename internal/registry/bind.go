package registry

import (
	"fmt"
	"go/types"
	"strconv"
	"strings"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

// TypeOf implements domain.Describer. go/types expressions are returned as
// they are; textual ones are bound against the index, instantiating generic
// types as needed.
func (s *Service) TypeOf(expr typeexpr.Expr) (types.Type, error) {
	if expr == nil {
		return nil, fmt.Errorf("%w: nil expression", domain.ErrUnknownType)
	}
	if t, ok := typeexpr.GoType(expr); ok {
		return t, nil
	}
	return s.Bind(expr.Name())
}

// Bind resolves a rendered type name such as
// "github.com/acme/blog/model.Page[github.com/acme/blog/model.Article]".
func (s *Service) Bind(name string) (types.Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", domain.ErrUnknownType)
	}

	switch {
	case strings.HasPrefix(name, "*"):
		elem, err := s.Bind(name[1:])
		if err != nil {
			return nil, err
		}
		return types.NewPointer(elem), nil
	case strings.HasPrefix(name, "[]"):
		elem, err := s.Bind(name[2:])
		if err != nil {
			return nil, err
		}
		return types.NewSlice(elem), nil
	case strings.HasPrefix(name, "map["):
		return s.bindMap(name)
	case strings.HasPrefix(name, "["):
		return s.bindArray(name)
	case name == "any" || name == "interface{}":
		return types.Universe.Lookup("any").Type(), nil
	}

	if obj, ok := types.Universe.Lookup(name).(*types.TypeName); ok {
		return obj.Type(), nil
	}

	ref := typeexpr.Parse(name)
	obj, ok := s.FindTypeByName(typeexpr.BaseName(ref))
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownType, name)
	}

	args := ref.TypeArgs()
	if len(args) == 0 {
		return obj.Type(), nil
	}

	named, ok := obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() != len(args) {
		return nil, fmt.Errorf("%w: %s does not take %d type arguments", domain.ErrUnknownType, typeexpr.BaseName(ref), len(args))
	}

	targs := make([]types.Type, len(args))
	for i, arg := range args {
		t, err := s.Bind(arg.Name())
		if err != nil {
			return nil, err
		}
		targs[i] = t
	}

	inst, err := types.Instantiate(nil, named.Origin(), targs, true)
	if err != nil {
		return nil, fmt.Errorf("%w: instantiate %s: %v", domain.ErrUnknownType, name, err)
	}
	return inst, nil
}

func (s *Service) bindMap(name string) (types.Type, error) {
	end := closingBracket(name, len("map"))
	if end < 0 {
		return nil, fmt.Errorf("%w: malformed map %s", domain.ErrUnknownType, name)
	}
	key, err := s.Bind(name[len("map["):end])
	if err != nil {
		return nil, err
	}
	value, err := s.Bind(name[end+1:])
	if err != nil {
		return nil, err
	}
	return types.NewMap(key, value), nil
}

func (s *Service) bindArray(name string) (types.Type, error) {
	end := closingBracket(name, 0)
	if end < 0 {
		return nil, fmt.Errorf("%w: malformed array %s", domain.ErrUnknownType, name)
	}
	length, err := strconv.ParseInt(name[1:end], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: array length in %s", domain.ErrUnknownType, name)
	}
	elem, err := s.Bind(name[end+1:])
	if err != nil {
		return nil, err
	}
	return types.NewArray(elem, length), nil
}

// closingBracket returns the index of the ']' matching the '[' at open.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
