package schema

import (
	"reflect"
	"sort"
	"sync"

	"github.com/go-openapi/spec"

	"github.com/hexamon/hexaswag/internal/console"
)

// Definitions is the scan-wide set of named models. It is safe for
// concurrent use and only ever grows.
type Definitions struct {
	mu      sync.RWMutex
	items   map[string]spec.Schema
	origins map[string]string
}

// NewDefinitions returns an empty set.
func NewDefinitions() *Definitions {
	return &Definitions{items: make(map[string]spec.Schema), origins: make(map[string]string)}
}

// Define registers schema under name if the name is free and reports
// whether it did. Registering the same content twice is a no-op; differing
// content keeps the first registration.
func (d *Definitions) Define(name string, schema spec.Schema) bool {
	return d.DefineFrom("", name, schema)
}

// DefineFrom is Define for definitions derived from another one. origin is
// kept with the definition and reported by Origin.
func (d *Definitions) DefineFrom(origin, name string, schema spec.Schema) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.items[name]; ok {
		if !reflect.DeepEqual(existing, schema) {
			console.Logger.Debug("definition %s already registered with different content, keeping the first", name)
		}
		return false
	}
	d.items[name] = schema
	if origin != "" {
		d.origins[name] = origin
	}
	return true
}

// Origin returns what name was derived from, or "" for definitions
// registered with Define.
func (d *Definitions) Origin(name string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.origins[name]
}

// Lookup returns the definition registered under name.
func (d *Definitions) Lookup(name string) (spec.Schema, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	schema, ok := d.items[name]
	return schema, ok
}

// Len returns the number of definitions.
func (d *Definitions) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items)
}

// Names returns the registered names, sorted.
func (d *Definitions) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.items))
	for name := range d.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the definitions into a swagger definitions map.
func (d *Definitions) Snapshot() spec.Definitions {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(spec.Definitions, len(d.items))
	for name, schema := range d.items {
		out[name] = schema
	}
	return out
}
