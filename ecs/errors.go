package ecs

import "errors"

// Sentinel errors returned by the World API. Callers match them with errors.Is;
// every returned error wraps exactly one of these with operation context.
var (
	// ErrNotFound is returned when a lookup by identity, by name, or by
	// component type misses.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateComponent is returned when attaching a second component of
	// the same type to an entity that already has one.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrInvalidOperation is returned for usage errors that are not plain
	// lookup misses, such as destroying an identity that is not live.
	ErrInvalidOperation = errors.New("invalid operation")
)
