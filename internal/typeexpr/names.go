package typeexpr

import (
	"strings"
	"unicode"
)

// IgnoreNameOverridePrefix marks synthesized type names that bypass @name overrides.
const IgnoreNameOverridePrefix = '!'

// BaseName returns the fully-qualified name of expr with all type arguments stripped.
func BaseName(expr Expr) string {
	if expr == nil {
		return ""
	}
	return StripNoise(expr.Name())
}

// StripNoise reduces a rendered type name to its base name. It drops pointer
// stars, the name-override prefix, wrapping parentheses, whitespace, an
// unmatched trailing bracket and the generic argument list.
//
//	"*model.Entity[model.Article]" -> "model.Entity"
//	"(!hexamon.Page[x.Y])"         -> "hexamon.Page"
func StripNoise(name string) string {
	name = removeSpaces(name)
	for {
		trimmed := strings.TrimLeft(name, "*"+string(IgnoreNameOverridePrefix))
		if len(trimmed) > 1 && trimmed[0] == '(' && trimmed[len(trimmed)-1] == ')' {
			trimmed = trimmed[1 : len(trimmed)-1]
		}
		if trimmed == name {
			break
		}
		name = trimmed
	}

	if bracketDepth(name) < 0 {
		name = strings.TrimSuffix(name, "]")
	}

	if idx := strings.IndexByte(name, '['); idx >= 0 {
		name = name[:idx]
	}
	return name
}

// SimpleName returns the unqualified type name of expr.
//
//	"github.com/acme/blog/model.Article[x.Y]" -> "Article"
func SimpleName(expr Expr) string {
	return simpleName(BaseName(expr))
}

// PackagePath returns the import path part of a base name, or "" for
// predeclared names.
func PackagePath(baseName string) string {
	lastSlash := strings.LastIndexByte(baseName, '/')
	lastDot := strings.LastIndexByte(baseName, '.')
	if lastDot <= lastSlash {
		return ""
	}
	return baseName[:lastDot]
}

func simpleName(baseName string) string {
	if idx := strings.LastIndexByte(baseName, '/'); idx >= 0 {
		baseName = baseName[idx+1:]
	}
	if idx := strings.LastIndexByte(baseName, '.'); idx >= 0 {
		baseName = baseName[idx+1:]
	}
	return baseName
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func bracketDepth(s string) int {
	depth := 0
	for _, ch := range s {
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
		}
	}
	return depth
}
