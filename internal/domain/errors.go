package domain

import "errors"

var (
	// ErrNoResolver means a strategy was classified but nothing resolves it.
	ErrNoResolver = errors.New("no resolver registered for strategy")
	// ErrUnknownStrategy is returned when parsing an unknown strategy name.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrStrategyConflict means a base name was bound to two strategies.
	ErrStrategyConflict = errors.New("base name already bound to another strategy")
	// ErrUnknownType means a type expression could not be bound to a loaded type.
	ErrUnknownType = errors.New("unknown type")
)
