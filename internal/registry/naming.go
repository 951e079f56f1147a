package registry

import (
	"go/types"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English, cases.NoLower)

// DefinitionName implements domain.Describer.
//
// Unique types use their simple name, types whose simple name is declared
// in several packages use the full path form, and generic instances append
// the names of their type arguments:
//
//	model.Article          -> Article
//	legacy.Article         -> github_com_acme_blog_legacy.Article
//	hexamon.Page[Article]  -> PageArticle
func (s *Service) DefinitionName(n *types.Named) string {
	obj := n.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}

	name := obj.Name()
	if !s.IsUnique(obj) {
		name = makeFullPathDefName(obj.Pkg().Path(), obj.Name())
	}

	args := n.TypeArgs()
	if args == nil || args.Len() == 0 {
		return name
	}

	var b strings.Builder
	b.WriteString(name)
	for i := 0; i < args.Len(); i++ {
		b.WriteString(s.argName(args.At(i)))
	}
	return b.String()
}

func (s *Service) argName(t types.Type) string {
	switch tt := t.(type) {
	case *types.Alias:
		return s.argName(types.Unalias(tt))
	case *types.Named:
		return normalizeGenericTypeName(s.DefinitionName(tt))
	case *types.Basic:
		return title.String(tt.Name())
	case *types.Pointer:
		return s.argName(tt.Elem())
	case *types.Slice:
		return "Array" + s.argName(tt.Elem())
	case *types.Array:
		return "Array" + s.argName(tt.Elem())
	case *types.Map:
		return "Map" + s.argName(tt.Key()) + s.argName(tt.Elem())
	case *types.Interface:
		return "Any"
	}
	return "Object"
}

func normalizeGenericTypeName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// makeFullPathDefName converts a package path and type name to the
// definition name used for types that are not unique.
// "github.com/chargebee/chargebee-go/v3/enum", "Source" →
// "github_com_chargebee_chargebee-go_v3_enum.Source"
func makeFullPathDefName(pkgPath, typeName string) string {
	sanitized := strings.Map(func(r rune) rune {
		if r == '\\' || r == '/' || r == '.' {
			return '_'
		}
		return r
	}, pkgPath)

	return sanitized + "." + typeName
}
