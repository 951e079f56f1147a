// Package typeexpr models possibly generic type expressions independently of
// where they come from: go/types values loaded from source, or textual bound
// names such as "github.com/acme/blog/model.Page[github.com/acme/blog/model.Article]".
package typeexpr

// Expr is a type expression handle. Expressions are immutable.
type Expr interface {
	// Name is the fully-qualified name as rendered by the host, type arguments included.
	Name() string
}

// Generic is implemented by expressions that can carry type arguments.
type Generic interface {
	Expr
	// TypeArgs returns the ordered type arguments, or nil for non-generic types.
	TypeArgs() []Expr
}

// FirstInner returns the first type argument of expr.
// Non-generic expressions and generic ones without arguments both report false.
func FirstInner(expr Expr) (Expr, bool) {
	if expr == nil {
		return nil, false
	}
	generic, ok := expr.(Generic)
	if !ok {
		return nil, false
	}
	args := generic.TypeArgs()
	if len(args) == 0 {
		return nil, false
	}
	return args[0], true
}
