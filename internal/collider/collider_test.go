package collider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vovakirdan/coquette/internal/core"
)

// event is a single notification observed by a test entity.
type event struct {
	kind  string // "collision" or "uncollision"
	self  string
	other string
	phase core.Phase
}

type journal struct {
	events []event
}

func (j *journal) collisions() []event {
	var out []event
	for _, e := range j.events {
		if e.kind == "collision" {
			out = append(out, e)
		}
	}
	return out
}

func (j *journal) uncollisions() []event {
	var out []event
	for _, e := range j.events {
		if e.kind == "uncollision" {
			out = append(out, e)
		}
	}
	return out
}

// toucher receives collision notifications only.
type toucher struct {
	name  string
	pos   core.Vec
	size  core.Vec
	shape core.BoundingShape
	log   *journal
}

func (t *toucher) Pos() core.Vec                     { return t.pos }
func (t *toucher) Size() core.Vec                    { return t.size }
func (t *toucher) BoundingShape() core.BoundingShape { return t.shape }

func (t *toucher) Collision(other any, phase core.Phase) {
	t.log.events = append(t.log.events, event{"collision", t.name, nameOf(other), phase})
}

// watcher also wants uncollision notifications, which turns on record keeping.
type watcher struct {
	toucher
}

func (w *watcher) Uncollision(other any) {
	w.log.events = append(w.log.events, event{kind: "uncollision", self: w.name, other: nameOf(other)})
}

// scenery has no position and never collides.
type scenery struct{ name string }

func nameOf(e any) string {
	switch v := e.(type) {
	case *toucher:
		return v.name
	case *watcher:
		return v.name
	case *scenery:
		return v.name
	}
	return fmt.Sprintf("%T", e)
}

func newToucher(log *journal, name string, x, y float64) *toucher {
	return &toucher{name: name, pos: core.V(x, y), size: core.V(10, 10), log: log}
}

func newWatcher(log *journal, name string, x, y float64) *watcher {
	return &watcher{toucher: *newToucher(log, name, x, y)}
}

func TestInitialThenSustainedThenUncollision(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	b := newToucher(log, "b", 5, 5)
	entities := []any{a, b}
	c := New()

	for tick := 1; tick <= 3; tick++ {
		log.events = nil
		if err := c.Update(entities); err != nil {
			t.Fatalf("tick %d: Update() error: %v", tick, err)
		}

		want := core.PhaseSustained
		if tick == 1 {
			want = core.PhaseInitial
		}
		got := log.collisions()
		if len(got) != 2 {
			t.Fatalf("tick %d: expected 2 collision notifications, got %d", tick, len(got))
		}
		if got[0].self != "a" || got[0].other != "b" || got[1].self != "b" || got[1].other != "a" {
			t.Errorf("tick %d: notification order = %+v, expected a then b", tick, got)
		}
		for _, e := range got {
			if e.phase != want {
				t.Errorf("tick %d: phase = %v, expected %v", tick, e.phase, want)
			}
		}
	}

	// Separate on tick 4
	b.pos = core.V(50, 50)
	log.events = nil
	if err := c.Update(entities); err != nil {
		t.Fatalf("tick 4: Update() error: %v", err)
	}

	if n := len(log.collisions()); n != 0 {
		t.Errorf("tick 4: expected no collision notifications, got %d", n)
	}
	// Only a implements Uncollision, so only a hears about it
	un := log.uncollisions()
	if len(un) != 1 || un[0].self != "a" || un[0].other != "b" {
		t.Errorf("tick 4: uncollisions = %+v, expected a<-b", un)
	}
	if c.Len() != 0 {
		t.Errorf("record should be removed after separation, have %d", c.Len())
	}

	// Still apart: nothing at all
	log.events = nil
	if err := c.Update(entities); err != nil {
		t.Fatalf("tick 5: Update() error: %v", err)
	}
	if len(log.events) != 0 {
		t.Errorf("tick 5: expected no notifications, got %+v", log.events)
	}
}

func TestUncollisionNotifiesBothInScanOrder(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	b := newWatcher(log, "b", 5, 0)
	entities := []any{a, b}
	c := New()

	if err := c.Update(entities); err != nil {
		t.Fatal(err)
	}
	a.pos = core.V(-100, 0)
	log.events = nil
	if err := c.Update(entities); err != nil {
		t.Fatal(err)
	}

	un := log.uncollisions()
	if len(un) != 2 {
		t.Fatalf("expected 2 uncollision notifications, got %+v", un)
	}
	if un[0].self != "a" || un[1].self != "b" {
		t.Errorf("uncollision order = %+v, expected a then b", un)
	}
}

func TestTrackingInactiveAlwaysInitial(t *testing.T) {
	log := &journal{}
	a := newToucher(log, "a", 0, 0)
	b := newToucher(log, "b", 5, 5)
	entities := []any{a, b}
	c := New()

	for tick := 1; tick <= 3; tick++ {
		log.events = nil
		if err := c.Update(entities); err != nil {
			t.Fatal(err)
		}
		for _, e := range log.collisions() {
			if e.phase != core.PhaseInitial {
				t.Errorf("tick %d: phase = %v, expected Initial without uncollision tracking", tick, e.phase)
			}
		}
		if c.Len() != 0 {
			t.Errorf("tick %d: no records should be kept, have %d", tick, c.Len())
		}
	}

	stats := c.Stats()
	if stats.Initial != 3 || stats.Sustained != 0 {
		t.Errorf("Stats() = %+v, expected 3 initial and 0 sustained", stats)
	}
}

func TestDestroyEntityPurgesWithoutNotification(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	b := newWatcher(log, "b", 5, 0)
	d := newWatcher(log, "d", 8, 0)
	c := New()

	if err := c.Update([]any{a, b, d}); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 records (ab, ad, bd), got %d", c.Len())
	}

	log.events = nil
	c.DestroyEntity(b)

	if len(log.events) != 0 {
		t.Errorf("DestroyEntity should not notify, got %+v", log.events)
	}
	if c.Len() != 1 || !c.Touching(a, d) {
		t.Errorf("only the a-d record should survive, have %+v", c.Records())
	}
	if c.Stats().Purged != 2 {
		t.Errorf("Purged = %d, expected 2", c.Stats().Purged)
	}

	// Next tick without b: a and d are still touching and sustained
	if err := c.Update([]any{a, d}); err != nil {
		t.Fatal(err)
	}
	for _, e := range log.collisions() {
		if e.phase != core.PhaseSustained {
			t.Errorf("survivors should stay sustained, got %v", e.phase)
		}
	}
	if len(log.uncollisions()) != 0 {
		t.Errorf("survivors must not be told about the destroyed entity, got %+v", log.uncollisions())
	}
}

func TestRecordUniqueness(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	b := newToucher(log, "b", 2, 2)
	d := newToucher(log, "d", 4, 4)
	entities := []any{a, b, d}
	c := New()

	moves := []core.Vec{core.V(4, 4), core.V(40, 40), core.V(3, 3), core.V(3, 3), core.V(100, 0), core.V(1, 1)}
	for _, m := range moves {
		d.pos = m
		if err := c.Update(entities); err != nil {
			t.Fatal(err)
		}

		seen := make(map[[2]any]bool)
		for _, r := range c.Records() {
			key := [2]any{r.A, r.B}
			rev := [2]any{r.B, r.A}
			if seen[key] || seen[rev] {
				t.Fatalf("duplicate record for pair %s-%s", nameOf(r.A), nameOf(r.B))
			}
			seen[key] = true
		}
	}
}

func TestSeparationWithoutRecordIsNoop(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	b := newWatcher(log, "b", 50, 50)
	c := New()

	c.separate(a, b)
	if len(log.events) != 0 {
		t.Errorf("separate without a record should not notify, got %+v", log.events)
	}
	if c.Stats().Uncollisions != 0 {
		t.Errorf("Uncollisions = %d, expected 0", c.Stats().Uncollisions)
	}
}

func TestInertEntitiesAreSkipped(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	s := &scenery{name: "tree"}
	b := newToucher(log, "b", 1, 1)
	c := New()

	if err := c.Update([]any{s, a, b}); err != nil {
		t.Fatal(err)
	}
	for _, e := range log.events {
		if e.other == "tree" || e.self == "tree" {
			t.Errorf("scenery should never collide, got %+v", e)
		}
	}
	if len(log.collisions()) != 2 {
		t.Errorf("expected a-b collision, got %+v", log.events)
	}
}

func TestUpdateFailsOnUnsupportedShape(t *testing.T) {
	log := &journal{}
	a := newToucher(log, "a", 0, 0)
	b := newToucher(log, "b", 0, 0)
	b.shape = core.BoundingShape(42)
	c := New()

	err := c.Update([]any{a, b})
	if !errors.Is(err, core.ErrUnsupportedShape) {
		t.Errorf("Update() error = %v, expected ErrUnsupportedShape", err)
	}
	if len(log.events) != 0 {
		t.Errorf("no notifications expected on failed tick, got %+v", log.events)
	}
}

func TestUpdateFailsOnDegenerateGeometry(t *testing.T) {
	log := &journal{}
	ball := newToucher(log, "ball", 0, 0)
	ball.shape = core.ShapeCircle
	flat := newToucher(log, "flat", 30, 30)
	flat.size = core.V(0, 0)
	c := New()

	if err := c.Update([]any{ball, flat}); !errors.Is(err, core.ErrInvalidGeometry) {
		t.Errorf("Update() error = %v, expected ErrInvalidGeometry", err)
	}
}

// tagged is a value-type entity that cannot be compared with ==.
type tagged struct {
	p, s core.Vec
	tags []string
}

func (t tagged) Pos() core.Vec   { return t.p }
func (t tagged) Size() core.Vec  { return t.s }
func (t tagged) Uncollision(any) {}

func TestUpdateRejectsUncomparableEntities(t *testing.T) {
	a := tagged{p: core.V(0, 0), s: core.V(2, 2), tags: []string{"a"}}
	b := tagged{p: core.V(1, 1), s: core.V(2, 2), tags: []string{"b"}}
	c := New()

	for tick := 1; tick <= 2; tick++ {
		if err := c.Update([]any{a, b}); !errors.Is(err, core.ErrUncomparableEntity) {
			t.Fatalf("tick %d: Update() error = %v, expected ErrUncomparableEntity", tick, err)
		}
	}
	if c.Len() != 0 {
		t.Errorf("records = %d after rejected ticks", c.Len())
	}

	// Inert values are never compared, so they are allowed.
	if err := c.Update([]any{struct{ tags []string }{}}); err != nil {
		t.Errorf("Update() with an inert uncomparable value = %v", err)
	}
}

func TestMutationDuringCallbackDoesNotAffectScan(t *testing.T) {
	log := &journal{}
	a := newToucher(log, "a", 0, 0)
	b := newToucher(log, "b", 1, 1)
	d := newToucher(log, "d", 2, 2)
	entities := []any{a, b, d}

	// A hostile caller truncates its own slice during the scan
	mutator := &mutatingToucher{toucher: *newToucher(log, "m", 3, 3), target: &entities}
	entities = append(entities, mutator)

	c := New()
	if err := c.Update(entities); err != nil {
		t.Fatal(err)
	}
	// 4 entities all overlapping: 6 pairs, 12 notifications
	if n := len(log.collisions()); n != 12 {
		t.Errorf("expected 12 collision notifications from the snapshot, got %d", n)
	}
}

type mutatingToucher struct {
	toucher
	target *[]any
}

func (m *mutatingToucher) Collision(other any, phase core.Phase) {
	m.toucher.Collision(other, phase)
	if len(*m.target) > 0 {
		(*m.target)[0] = &scenery{name: "swapped"}
	}
}

func TestRecordIDs(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	b := newWatcher(log, "b", 5, 0)
	d := newWatcher(log, "d", 100, 0)
	c := New()

	if err := c.Update([]any{a, b, d}); err != nil {
		t.Fatal(err)
	}

	ids, err := c.RecordIDs(a, b)
	if err != nil || len(ids) != 1 || ids[0] != 0 {
		t.Errorf("RecordIDs(a, b) = (%v, %v), expected ([0], nil)", ids, err)
	}
	ids, err = c.RecordIDs(b, a)
	if err != nil || len(ids) != 1 {
		t.Errorf("RecordIDs(b, a) = (%v, %v), expected one match in either order", ids, err)
	}
	ids, err = c.RecordIDs(a, d)
	if err != nil || len(ids) != 0 {
		t.Errorf("RecordIDs(a, d) = (%v, %v), expected none", ids, err)
	}
	ids, err = c.RecordIDs(b, nil)
	if err != nil || len(ids) != 1 {
		t.Errorf("RecordIDs(b, nil) = (%v, %v), expected one match", ids, err)
	}
	ids, err = c.RecordIDs(d, nil)
	if err != nil || len(ids) != 0 {
		t.Errorf("RecordIDs(d, nil) = (%v, %v), expected none", ids, err)
	}
	if _, err = c.RecordIDs(nil, nil); !errors.Is(err, core.ErrInvalidQuery) {
		t.Errorf("RecordIDs(nil, nil) error = %v, expected ErrInvalidQuery", err)
	}
}

func TestSingleEntityQueryReturnsFirstOnly(t *testing.T) {
	log := &journal{}
	hub := newWatcher(log, "hub", 0, 0)
	s1 := newToucher(log, "s1", 5, 0)
	s2 := newToucher(log, "s2", 0, 5)
	c := New()

	if err := c.Update([]any{hub, s1, s2}); err != nil {
		t.Fatal(err)
	}
	ids, err := c.RecordIDs(hub, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Errorf("single entity query should return at most one index, got %v", ids)
	}
}

func TestReset(t *testing.T) {
	log := &journal{}
	a := newWatcher(log, "a", 0, 0)
	b := newToucher(log, "b", 1, 0)
	c := New()

	if err := c.Update([]any{a, b}); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if c.Len() != 0 || c.Stats() != (Stats{}) {
		t.Errorf("Reset should clear records and stats, have %d records and %+v", c.Len(), c.Stats())
	}
}
