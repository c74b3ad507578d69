package core

import (
	"errors"
	"testing"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		in       string
		expected BoundingShape
		wantErr  bool
	}{
		{"", ShapeRectangle, false},
		{"rectangle", ShapeRectangle, false},
		{"Circle", ShapeCircle, false},
		{" point ", ShapePoint, false},
		{"hexagon", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseShape(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedShape) {
				t.Errorf("ParseShape(%q) error = %v, expected ErrUnsupportedShape", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.expected {
			t.Errorf("ParseShape(%q) = (%v, %v), expected %v", tc.in, got, err, tc.expected)
		}
	}
}

type plainBox struct{ p, s Vec }

func (b plainBox) Pos() Vec  { return b.p }
func (b plainBox) Size() Vec { return b.s }

func TestShapeOfDefaultsToRectangle(t *testing.T) {
	if got := ShapeOf(plainBox{s: V(1, 1)}); got != ShapeRectangle {
		t.Errorf("ShapeOf() = %v, expected rectangle", got)
	}
	if got := ShapeOf(circle(0, 0, 2)); got != ShapeCircle {
		t.Errorf("ShapeOf() = %v, expected circle", got)
	}
}

func TestIntersectingSymmetry(t *testing.T) {
	bodies := []Body{
		rect(0, 0, 10, 10),
		rect(10, 0, 10, 10),
		rect(30, 30, 4, 4),
		circle(8, 8, 6),
		circle(-6, 0, 6),
		circle(25, 25, 10),
		point(10, 10),
		point(5, 5),
		point(31, 32),
		point(11, 11),
	}

	for i, a := range bodies {
		for j, b := range bodies {
			ab, errAB := Intersecting(a, b)
			ba, errBA := Intersecting(b, a)
			if errAB != nil || errBA != nil {
				t.Fatalf("Intersecting(%d, %d) errors: %v / %v", i, j, errAB, errBA)
			}
			if ab != ba {
				t.Errorf("Intersecting not symmetric for %s#%d and %s#%d: %v vs %v",
					a.Shape, i, b.Shape, j, ab, ba)
			}
		}
	}
}

func TestIntersectingDispatch(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Collidable
		expected bool
	}{
		{"rect-rect edge", rect(0, 0, 10, 10), rect(10, 0, 10, 10), true},
		{"rect-circle", rect(3, 0, 5, 5), circle(0, 0, 4), true},
		{"circle-rect", circle(0, 0, 4), rect(4, 0, 5, 5), false},
		{"rect-point", rect(0, 0, 10, 10), point(10, 10), true},
		{"point-rect outside", point(11, 10), rect(0, 0, 10, 10), false},
		{"circle-circle touching", circle(0, 0, 10), circle(10, 0, 10), false},
		{"point-circle", point(5, 1), circle(0, 0, 10), true},
		{"circle-point boundary", circle(0, 0, 10), point(5, 0), false},
		{"point-point", point(1, 1), point(1, 1), true},
		{"default shape is rectangle", plainBox{p: V(0, 0), s: V(2, 2)}, point(2, 2), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Intersecting(tc.a, tc.b)
			if err != nil {
				t.Fatalf("Intersecting() error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Intersecting() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestIntersectingUnsupportedShape(t *testing.T) {
	bad := Body{P: V(0, 0), S: V(1, 1), Shape: BoundingShape(7)}

	if _, err := Intersecting(bad, rect(0, 0, 1, 1)); !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("expected ErrUnsupportedShape, got %v", err)
	}
	if _, err := Intersecting(point(0, 0), bad); !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("expected ErrUnsupportedShape (reversed), got %v", err)
	}
}

func TestCollidingSkipsInertEntities(t *testing.T) {
	inert := struct{ name string }{"scenery"}

	got, err := Colliding(inert, rect(0, 0, 10, 10))
	if err != nil || got {
		t.Errorf("Colliding(inert, rect) = (%v, %v), expected (false, nil)", got, err)
	}
	got, err = Colliding(rect(0, 0, 10, 10), rect(5, 5, 1, 1))
	if err != nil || !got {
		t.Errorf("Colliding(rect, rect) = (%v, %v), expected (true, nil)", got, err)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseInitial.String() != "Initial" || PhaseSustained.String() != "Sustained" {
		t.Errorf("unexpected phase names %q %q", PhaseInitial, PhaseSustained)
	}
}
