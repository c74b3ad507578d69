package core

import "errors"

// Errors raised by the geometry kernel and the collision engine.
// They indicate malformed entities or misuse by calling code and are never retried.
var (
	// ErrInvalidGeometry reports degenerate input to the kernel, such as a zero-length segment.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnsupportedShape reports a bounding shape outside the recognized kinds.
	ErrUnsupportedShape = errors.New("unsupported bounding shape")

	// ErrInvalidQuery reports a collision record lookup with no entity given.
	ErrInvalidQuery = errors.New("invalid collision record query")

	// ErrUncomparableEntity reports an entity whose type cannot be compared with ==.
	ErrUncomparableEntity = errors.New("entity type is not comparable")
)
