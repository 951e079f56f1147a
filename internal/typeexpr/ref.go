package typeexpr

import (
	"strings"
)

// Ref is a textual type expression, typically produced by a type resolver
// that prints bound generic instances, e.g.
// "github.com/hexamon/hexaswag/pkg/hexamon.Entity[github.com/acme/blog/model.Article]".
type Ref struct {
	text string
	args []Expr
}

// Parse builds a Ref from its textual form. Type arguments are parsed eagerly
// so TypeArgs always hands back the same handles. A malformed argument list
// leaves the Ref non-generic.
func Parse(text string) *Ref {
	ref := &Ref{text: strings.TrimSpace(text)}

	_, params := splitGenericTypeName(strings.TrimLeft(removeSpaces(ref.text), "*"))
	for _, param := range params {
		ref.args = append(ref.args, Parse(param))
	}
	return ref
}

// Name returns the text the Ref was parsed from.
func (r *Ref) Name() string {
	if r == nil {
		return ""
	}
	return r.text
}

// TypeArgs returns the parsed type arguments.
func (r *Ref) TypeArgs() []Expr {
	if r == nil {
		return nil
	}
	return r.args
}

func (r *Ref) String() string {
	return r.Name()
}

// splitGenericTypeName splits a generic type name in its parts.
//
//	"hexamon.Page[model.Article]" -> ("hexamon.Page", ["model.Article"])
//	"Map[string,[]int]"           -> ("Map", ["string", "[]int"])
//
// Slices, maps and non-generic names return ("", nil).
func splitGenericTypeName(fullGenericForm string) (string, []string) {
	if len(fullGenericForm) == 0 || fullGenericForm[len(fullGenericForm)-1] != ']' {
		return "", nil
	}

	// split only at the first '[' and remove the last ']'
	genericParams := strings.SplitN(fullGenericForm[:len(fullGenericForm)-1], "[", 2)
	if len(genericParams) == 1 {
		return "", nil
	}

	genericTypeName := genericParams[0]
	if genericTypeName == "" || genericTypeName == "map" {
		return "", nil
	}

	depth := 0
	params := strings.FieldsFunc(genericParams[1], func(r rune) bool {
		if r == '[' {
			depth++
		} else if r == ']' {
			depth--
		} else if r == ',' && depth == 0 {
			return true
		}
		return false
	})
	if depth != 0 {
		return "", nil
	}

	return genericTypeName, params
}
