package core

import (
	"fmt"
	"math"
)

// Center returns the center point of an object: pos + size/2.
func Center(obj Collidable) Vec {
	pos, size := obj.Pos(), obj.Size()
	return Vec{X: pos.X + size.X/2, Y: pos.Y + size.Y/2}
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 Vec) float64 {
	x := p1.X - p2.X
	y := p1.Y - p2.Y
	return math.Sqrt(x*x + y*y)
}

// RectangleCorners returns the corners of an object's bounding rectangle
// in the order top-left, top-right, bottom-right, bottom-left.
func RectangleCorners(obj Collidable) [4]Vec {
	pos, size := obj.Pos(), obj.Size()
	return [4]Vec{
		{X: pos.X, Y: pos.Y},
		{X: pos.X + size.X, Y: pos.Y},
		{X: pos.X + size.X, Y: pos.Y + size.Y},
		{X: pos.X, Y: pos.Y + size.Y},
	}
}

// VectorTo returns the vector from start to end.
func VectorTo(start, end Vec) Vec {
	return Vec{X: end.X - start.X, Y: end.Y - start.Y}
}

// Magnitude returns the length of a vector.
func Magnitude(v Vec) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DotProduct returns the dot product of two vectors.
func DotProduct(v1, v2 Vec) float64 {
	return v1.X*v2.X + v1.Y*v2.Y
}

// UnitVector returns v scaled to length 1.
// The result is NaN for the zero vector; callers must not pass one.
func UnitVector(v Vec) Vec {
	m := Magnitude(v)
	return Vec{X: v.X / m, Y: v.Y / m}
}

// ClosestPointOnSegment projects p onto the segment [a, b], clamping to the
// endpoints when the projection falls outside it.
func ClosestPointOnSegment(a, b, p Vec) (Vec, error) {
	seg := VectorTo(a, b)
	segLen := Magnitude(seg)
	if segLen <= 0 {
		return Vec{}, fmt.Errorf("closest point on segment %v-%v: zero length: %w", a, b, ErrInvalidGeometry)
	}

	unit := UnitVector(seg)
	proj := DotProduct(VectorTo(a, p), unit)
	switch {
	case proj <= 0:
		return a, nil
	case proj >= segLen:
		return b, nil
	default:
		return Vec{X: a.X + unit.X*proj, Y: a.Y + unit.Y*proj}, nil
	}
}

// PointInside reports whether a point lies within obj's rectangle, edges included.
func PointInside(p Vec, obj Collidable) bool {
	pos, size := obj.Pos(), obj.Size()
	return p.X >= pos.X &&
		p.Y >= pos.Y &&
		p.X <= pos.X+size.X &&
		p.Y <= pos.Y+size.Y
}

// RectanglesIntersecting reports whether two rectangles overlap.
// Rectangles that only share an edge count as intersecting.
func RectanglesIntersecting(r1, r2 Collidable) bool {
	p1, s1 := r1.Pos(), r1.Size()
	p2, s2 := r2.Pos(), r2.Size()

	// No overlap only if one side is strictly beyond the other on either axis
	switch {
	case p1.X+s1.X < p2.X:
		return false
	case p1.X > p2.X+s2.X:
		return false
	case p1.Y > p2.Y+s2.Y:
		return false
	case p1.Y+s1.Y < p2.Y:
		return false
	}
	return true
}

// CirclesIntersecting reports whether two circles overlap.
// The radius of a circle is size.X / 2. Circles exactly touching do not intersect.
func CirclesIntersecting(c1, c2 Collidable) bool {
	return Distance(Center(c1), Center(c2)) < c1.Size().X/2+c2.Size().X/2
}

// PointAndCircleIntersecting reports whether point lies strictly inside circle.
func PointAndCircleIntersecting(point, circle Collidable) bool {
	return Distance(point.Pos(), Center(circle)) < circle.Size().X/2
}

// PointAndRectangleIntersecting reports whether point lies within rect, edges included.
func PointAndRectangleIntersecting(point, rect Collidable) bool {
	return PointInside(point.Pos(), rect)
}

// PointsIntersecting reports whether two points have exactly equal coordinates.
func PointsIntersecting(p1, p2 Collidable) bool {
	a, b := p1.Pos(), p2.Pos()
	return a.X == b.X && a.Y == b.Y
}

// segmentIntersectingCircle reports whether the segment [a, b] passes strictly
// within the circle's radius.
func segmentIntersectingCircle(circle Collidable, a, b Vec) (bool, error) {
	center := Center(circle)
	closest, err := ClosestPointOnSegment(a, b, center)
	if err != nil {
		return false, err
	}
	return Magnitude(VectorTo(closest, center)) < circle.Size().X/2, nil
}

// CircleAndRectangleIntersecting reports whether a circle overlaps a rectangle:
// either the circle's center is inside the rectangle (edges included), or one of
// the rectangle's four edges passes strictly within the radius.
// A rectangle with a zero-length edge yields ErrInvalidGeometry unless the
// center test already succeeded.
func CircleAndRectangleIntersecting(circle, rect Collidable) (bool, error) {
	if PointInside(Center(circle), rect) {
		return true, nil
	}

	c := RectangleCorners(rect)
	for i := range c {
		hit, err := segmentIntersectingCircle(circle, c[i], c[(i+1)%len(c)])
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}
