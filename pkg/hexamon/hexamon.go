// Package hexamon holds the wrapper types hexaswag rewrites before they reach
// the default schema builder. Handlers and models return these directly; the
// generator classifies them by name and unwraps their payload.
package hexamon

import "time"

// Entity wraps a persisted domain value with its bookkeeping fields.
// Documented as a model named after T with an "Entity" suffix, where the
// bookkeeping fields are prefixed with an underscore.
type Entity[T any] struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Entity    T         `json:"entity"`
}

// Nested is one node of a tree of T values.
type Nested[T any] struct {
	Node     T           `json:"node"`
	Children []Nested[T] `json:"children"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// Mono resolves to at most one T.
type Mono[T any] func() (T, error)

// Future delivers a single T once it is ready.
type Future[T any] <-chan T

// Flux streams zero or more T values.
type Flux[T any] <-chan T

// JSON is an opaque JSON object.
type JSON map[string]any
