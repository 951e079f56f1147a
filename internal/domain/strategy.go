package domain

import (
	"fmt"
	"strings"
)

// Strategy tags how a type expression is rewritten before it reaches the
// base schema builder.
type Strategy int

const (
	// Default hands the type to the base builder unchanged.
	Default Strategy = iota
	// DateTime renders calendar-time types as string/date-time.
	DateTime
	// MapLike renders opaque JSON objects as map[string]any.
	MapLike
	// WrapSingle unwraps a single-value container.
	WrapSingle
	// WrapArray unwraps a stream container into an array property.
	WrapArray
	// Entity materializes a "<T>Entity" model with bookkeeping fields.
	Entity
	// Nested materializes a "<T>Nested" tree model.
	Nested
	// Page renames page references to "HexamonPage...".
	Page
)

var strategyNames = [...]string{
	Default:    "default",
	DateTime:   "datetime",
	MapLike:    "maplike",
	WrapSingle: "wrapsingle",
	WrapArray:  "wraparray",
	Entity:     "entity",
	Nested:     "nested",
	Page:       "page",
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	all := make([]Strategy, len(strategyNames))
	for i := range strategyNames {
		all[i] = Strategy(i)
	}
	return all
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy is the inverse of String, case-insensitive.
func ParseStrategy(name string) (Strategy, error) {
	for i, candidate := range strategyNames {
		if strings.EqualFold(candidate, strings.TrimSpace(name)) {
			return Strategy(i), nil
		}
	}
	return Default, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
