// Package strategy classifies type expressions by base name.
package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hexamon/hexaswag/internal/domain"
	"github.com/hexamon/hexaswag/internal/typeexpr"
)

const hexamonPkg = "github.com/hexamon/hexaswag/pkg/hexamon"

// DefaultTable is the table a Registry created by Default starts with.
var DefaultTable = map[domain.Strategy][]string{
	domain.DateTime:   {"time.Time", "database/sql.NullTime"},
	domain.MapLike:    {"encoding/json.RawMessage", hexamonPkg + ".JSON"},
	domain.WrapSingle: {hexamonPkg + ".Mono", hexamonPkg + ".Future"},
	domain.WrapArray:  {hexamonPkg + ".Flux"},
	domain.Entity:     {hexamonPkg + ".Entity"},
	domain.Nested:     {hexamonPkg + ".Nested"},
	domain.Page:       {hexamonPkg + ".Page"},
}

// Registry maps base names to strategies. A base name belongs to exactly one
// strategy; names that were never registered classify as Default.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]domain.Strategy
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]domain.Strategy)}
}

// Default returns a registry holding DefaultTable.
func Default() *Registry {
	r := New()
	for s, names := range DefaultTable {
		if err := r.Register(s, names...); err != nil {
			panic(err)
		}
	}
	return r
}

// Register binds base names to s. Re-registering a name with the same
// strategy is a no-op; binding it to a different one fails and leaves the
// registry untouched.
func (r *Registry) Register(s domain.Strategy, names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		base := typeexpr.StripNoise(name)
		if base == "" {
			return fmt.Errorf("register %s: empty base name", s)
		}
		if bound, ok := r.byName[base]; ok && bound != s {
			return fmt.Errorf("%w: %s is %s, cannot register as %s", domain.ErrStrategyConflict, base, bound, s)
		}
	}

	for _, name := range names {
		r.byName[typeexpr.StripNoise(name)] = s
	}
	return nil
}

// Classify returns the strategy for expr's base name. Nil and unknown
// expressions are Default.
func (r *Registry) Classify(expr typeexpr.Expr) domain.Strategy {
	if expr == nil {
		return domain.Default
	}
	return r.ClassifyName(expr.Name())
}

// ClassifyName classifies a rendered type name.
func (r *Registry) ClassifyName(name string) domain.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.byName[typeexpr.StripNoise(name)]; ok {
		return s
	}
	return domain.Default
}

// Names lists the base names bound to s, sorted.
func (r *Registry) Names(s domain.Strategy) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, bound := range r.byName {
		if bound == s {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
