// Package containers provides a reference-identity wrapper for storing
// non-comparable-by-value objects (e.g. a pointer to a mutable struct) as
// IndexedSet members, ported from odex's Container escape hatch — a
// convenience, not a core requirement of the query pipeline.
package containers

// Container wraps obj so that it can be used as a map/set element by
// pointer identity rather than by the wrapped value's own equality.
// Two Containers wrapping equal-by-value objects are still distinct set
// members, exactly like the Python original's id()-based hashing.
type Container[T any] struct {
	Obj T
}

// New wraps obj in a fresh Container. Each call returns a distinct identity
// even if called twice with an equal obj.
func New[T any](obj T) *Container[T] {
	return &Container[T]{Obj: obj}
}
