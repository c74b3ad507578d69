package core

import (
	"fmt"
	"reflect"
	"time"
)

// Entities are plain values (usually pointers, so that identity comparison works)
// implementing any subset of the capability interfaces below. The engine discovers
// capabilities with type assertions.

// Collidable is implemented by entities that take part in collision testing.
// Entities without it are inert for collision purposes.
type Collidable interface {
	Pos() Vec
	Size() Vec
}

// Shaped lets a collidable choose its bounding shape. Collidables that do not
// implement it are treated as rectangles.
type Shaped interface {
	BoundingShape() BoundingShape
}

// CollisionHandler receives a notification for every tick an entity is touching another.
type CollisionHandler interface {
	Collision(other any, phase Phase)
}

// UncollisionHandler receives a notification when a touching pair separates.
// The presence of at least one live UncollisionHandler switches on record keeping.
type UncollisionHandler interface {
	Uncollision(other any)
}

// Updater is called once per tick with the elapsed frame interval.
type Updater interface {
	Update(interval time.Duration)
}

// ZIndexer orders drawing. Higher values are drawn on top. Missing means 0.
type ZIndexer interface {
	ZIndex() int
}

// Phase distinguishes the first tick of contact from the following ones.
type Phase int

const (
	PhaseInitial   Phase = iota // First tick two entities are found touching
	PhaseSustained              // Every later tick while contact persists
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "Initial"
	case PhaseSustained:
		return "Sustained"
	default:
		return "Unknown"
	}
}

// CheckIdentity returns an error wrapping ErrUncomparableEntity when e's
// dynamic type cannot be compared with ==, such as a struct value holding a slice.
func CheckIdentity(e any) error {
	if t := reflect.TypeOf(e); t != nil && !t.Comparable() {
		return fmt.Errorf("%v: %w", t, ErrUncomparableEntity)
	}
	return nil
}
