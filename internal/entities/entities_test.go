package entities

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/runner"
)

type ball struct {
	id      int
	updates []time.Duration
}

func (b *ball) Update(interval time.Duration) {
	b.updates = append(b.updates, interval)
}

type wall struct{ id int }

type purgeLog struct {
	purged []any
}

func (p *purgeLog) DestroyEntity(e any) {
	p.purged = append(p.purged, e)
}

func newRegistry() (*Entities, *runner.Runner, *purgeLog) {
	r := runner.New()
	p := &purgeLog{}
	return New(r, p, nil), r, p
}

type badge struct{ tags []string }

func TestCreateRejectsUncomparable(t *testing.T) {
	es, r, _ := newRegistry()

	called := false
	es.Create(func() any { return badge{tags: []string{"x"}} }, func(any) { called = true })
	es.Create(func() any { return &ball{id: 1} }, nil)
	r.Update()

	if es.Len() != 1 {
		t.Errorf("Len() = %d, expected only the pointer entity", es.Len())
	}
	if called {
		t.Error("done called for a rejected entity")
	}
	if err := es.Err(); !errors.Is(err, core.ErrUncomparableEntity) {
		t.Errorf("Err() = %v, expected ErrUncomparableEntity", err)
	}
	if err := es.Err(); err != nil {
		t.Errorf("Err() not cleared: %v", err)
	}
}

func TestCreateIsDeferred(t *testing.T) {
	es, r, _ := newRegistry()

	var created any
	es.Create(func() any { return &ball{id: 1} }, func(e any) { created = e })

	if es.Len() != 0 {
		t.Errorf("entity should not be live before the runner drains, Len() = %d", es.Len())
	}

	r.Update()

	if es.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", es.Len())
	}
	if created != es.All()[0] {
		t.Error("done callback should receive the live entity")
	}
}

func TestDestroyPurgesBeforeRemoval(t *testing.T) {
	es, r, p := newRegistry()
	b := &ball{id: 1}
	w := &wall{id: 2}
	es.Create(func() any { return b }, nil)
	es.Create(func() any { return w }, nil)
	r.Update()

	called := 0
	es.Destroy(b, func() { called++ })
	if es.Len() != 2 {
		t.Errorf("destroy should be deferred, Len() = %d", es.Len())
	}
	r.Update()

	if es.Len() != 1 || es.All()[0] != w {
		t.Errorf("only the wall should remain, have %v", es.All())
	}
	if len(p.purged) != 1 || p.purged[0] != b {
		t.Errorf("purger should see the ball exactly once, saw %v", p.purged)
	}
	if called != 1 {
		t.Errorf("done called %d times, expected 1", called)
	}

	// Destroying again is a no-op
	es.Destroy(b, func() { called++ })
	r.Update()
	if called != 1 || len(p.purged) != 1 {
		t.Errorf("destroying a dead entity should be a no-op, called=%d purged=%d", called, len(p.purged))
	}
}

func TestDestroyAll(t *testing.T) {
	es, r, p := newRegistry()
	for i := 0; i < 3; i++ {
		es.Create(func() any { return &wall{id: i} }, nil)
	}
	r.Update()

	es.DestroyAll()
	r.Update()

	if es.Len() != 0 {
		t.Errorf("Len() = %d after DestroyAll, expected 0", es.Len())
	}
	if len(p.purged) != 3 {
		t.Errorf("purged %d entities, expected 3", len(p.purged))
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	es, r, _ := newRegistry()
	es.Create(func() any { return &wall{id: 1} }, nil)
	r.Update()

	snap := es.All()
	snap[0] = nil

	if es.All()[0] == nil {
		t.Error("modifying the snapshot should not affect the registry")
	}
}

func TestUpdateCallsUpdaters(t *testing.T) {
	es, r, _ := newRegistry()
	b := &ball{id: 1}
	es.Create(func() any { return b }, nil)
	es.Create(func() any { return &wall{id: 2} }, nil)
	r.Update()

	es.Update(16 * time.Millisecond)
	es.Update(17 * time.Millisecond)

	expected := []time.Duration{16 * time.Millisecond, 17 * time.Millisecond}
	if !reflect.DeepEqual(b.updates, expected) {
		t.Errorf("ball updates = %v, expected %v", b.updates, expected)
	}
}

func TestOfFiltersByType(t *testing.T) {
	es, r, _ := newRegistry()
	es.Create(func() any { return &ball{id: 1} }, nil)
	es.Create(func() any { return &wall{id: 2} }, nil)
	es.Create(func() any { return &ball{id: 3} }, nil)
	r.Update()

	balls := Of[*ball](es)
	if len(balls) != 2 || balls[0].id != 1 || balls[1].id != 3 {
		t.Errorf("Of[*ball] = %v, expected balls 1 and 3 in order", balls)
	}
	if walls := Of[*wall](es); len(walls) != 1 {
		t.Errorf("Of[*wall] returned %d, expected 1", len(walls))
	}
}
