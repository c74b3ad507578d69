package core

import (
	"fmt"
	"strings"
)

// BoundingShape selects the narrow-phase geometry used for an entity.
type BoundingShape int

// The zero value is ShapeRectangle, the default for entities without a shape.
const (
	ShapeRectangle BoundingShape = iota
	ShapeCircle
	ShapePoint
)

// String returns the lowercase name of the shape.
func (s BoundingShape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapePoint:
		return "point"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Valid reports whether s is one of the recognized shapes.
func (s BoundingShape) Valid() bool {
	return s >= ShapeRectangle && s <= ShapePoint
}

// ParseShape converts a shape name to a BoundingShape. The empty string means rectangle.
func ParseShape(name string) (BoundingShape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rectangle", "rect":
		return ShapeRectangle, nil
	case "circle":
		return ShapeCircle, nil
	case "point":
		return ShapePoint, nil
	default:
		return 0, fmt.Errorf("shape %q: %w", name, ErrUnsupportedShape)
	}
}

// ShapeOf resolves the bounding shape of a collidable.
func ShapeOf(obj Collidable) BoundingShape {
	if s, ok := obj.(Shaped); ok {
		return s.BoundingShape()
	}
	return ShapeRectangle
}

// Colliding reports whether two arbitrary entities are touching.
// Entities that are not Collidable never collide.
func Colliding(a, b any) (bool, error) {
	ca, ok := a.(Collidable)
	if !ok {
		return false, nil
	}
	cb, ok := b.(Collidable)
	if !ok {
		return false, nil
	}
	return Intersecting(ca, cb)
}

// Intersecting runs the narrow-phase test for a pair of collidables using their
// resolved bounding shapes. The result does not depend on argument order.
func Intersecting(a, b Collidable) (bool, error) {
	sa, sb := ShapeOf(a), ShapeOf(b)
	if !sa.Valid() || !sb.Valid() {
		return false, fmt.Errorf("intersecting %s with %s: %w", sa, sb, ErrUnsupportedShape)
	}

	// Normalize so that sa <= sb; each unordered pair then has a single case
	if sa > sb {
		a, b = b, a
		sa, sb = sb, sa
	}

	switch {
	case sa == ShapeRectangle && sb == ShapeRectangle:
		return RectanglesIntersecting(a, b), nil
	case sa == ShapeRectangle && sb == ShapeCircle:
		return CircleAndRectangleIntersecting(b, a)
	case sa == ShapeRectangle && sb == ShapePoint:
		return PointAndRectangleIntersecting(b, a), nil
	case sa == ShapeCircle && sb == ShapeCircle:
		return CirclesIntersecting(a, b), nil
	case sa == ShapeCircle && sb == ShapePoint:
		return PointAndCircleIntersecting(b, a), nil
	case sa == ShapePoint && sb == ShapePoint:
		return PointsIntersecting(a, b), nil
	}
	return false, fmt.Errorf("intersecting %s with %s: %w", sa, sb, ErrUnsupportedShape)
}

// Body is a minimal Collidable value, handy for ad-hoc geometry such as the
// renderer's view rectangle.
type Body struct {
	P     Vec
	S     Vec
	Shape BoundingShape
}

// Pos returns the body's position.
func (b Body) Pos() Vec { return b.P }

// Size returns the body's size.
func (b Body) Size() Vec { return b.S }

// BoundingShape returns the body's shape.
func (b Body) BoundingShape() BoundingShape { return b.Shape }
