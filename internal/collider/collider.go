// Package collider implements pairwise collision detection between live entities.
//
// Every tick the collider tests all unordered pairs of the entity snapshot,
// notifies touching entities through core.CollisionHandler and, when at least
// one entity implements core.UncollisionHandler, keeps records of touching
// pairs so it can tell an initial contact from a sustained one and report
// separation.
//
// Entities are compared with ==, so they must be comparable values; pointers
// are the usual choice. Update rejects a collidable of an uncomparable type.
package collider

import (
	"fmt"

	"github.com/vovakirdan/coquette/internal/core"
)

// Record is an unordered pair of entities currently considered in contact.
type Record struct {
	A, B any
}

// involves reports whether e is one side of the record.
func (r Record) involves(e any) bool {
	return r.A == e || r.B == e
}

// matches reports whether the record is the pair {a, b} in either order.
func (r Record) matches(a, b any) bool {
	return (r.A == a && r.B == b) || (r.A == b && r.B == a)
}

// Stats are cumulative counters of collider activity.
type Stats struct {
	Initial      int // Collision notifications with PhaseInitial
	Sustained    int // Collision notifications with PhaseSustained
	Uncollisions int // Pairs that separated
	Purged       int // Records dropped because an entity was destroyed
}

// Sub returns the difference s - o, used to report per-tick activity.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Initial:      s.Initial - o.Initial,
		Sustained:    s.Sustained - o.Sustained,
		Uncollisions: s.Uncollisions - o.Uncollisions,
		Purged:       s.Purged - o.Purged,
	}
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Initial:      s.Initial + o.Initial,
		Sustained:    s.Sustained + o.Sustained,
		Uncollisions: s.Uncollisions + o.Uncollisions,
		Purged:       s.Purged + o.Purged,
	}
}

// Collider owns the set of collision records for one engine.
// It is not safe for concurrent use; the engine drives it from a single goroutine.
type Collider struct {
	records []Record
	stats   Stats
}

// New creates an empty collider.
func New() *Collider {
	return &Collider{}
}

// Update runs one broad-phase scan over entities.
// The slice is copied first so that callbacks cannot change which pairs are
// tested this tick. The first geometry or shape error aborts the tick.
func (c *Collider) Update(entities []any) error {
	snapshot := make([]any, len(entities))
	copy(snapshot, entities)

	for i, e := range snapshot {
		if _, ok := e.(core.Collidable); !ok {
			continue
		}
		if err := core.CheckIdentity(e); err != nil {
			return fmt.Errorf("collider: entity %d: %w", i, err)
		}
	}

	tracking := uncollisionTracking(snapshot)

	for i := 0; i < len(snapshot); i++ {
		for j := i + 1; j < len(snapshot); j++ {
			a, b := snapshot[i], snapshot[j]

			hit, err := core.Colliding(a, b)
			if err != nil {
				return fmt.Errorf("collider: testing entities %d and %d: %w", i, j, err)
			}

			if hit {
				c.collision(a, b, tracking)
			} else {
				c.separate(a, b)
			}
		}
	}
	return nil
}

// collision decides the phase for a touching pair and notifies both entities.
func (c *Collider) collision(a, b any, tracking bool) {
	phase := core.PhaseInitial
	if tracking {
		if c.indexOfPair(a, b) < 0 {
			c.records = append(c.records, Record{A: a, B: b})
		} else {
			phase = core.PhaseSustained
		}
	}

	if phase == core.PhaseInitial {
		c.stats.Initial++
	} else {
		c.stats.Sustained++
	}

	notifyCollision(a, b, phase)
	notifyCollision(b, a, phase)
}

// separate removes the record for a pair that is no longer touching and
// notifies both entities. Pairs without a record are left alone.
func (c *Collider) separate(a, b any) {
	idx := c.indexOfPair(a, b)
	if idx < 0 {
		return
	}

	c.removeAt(idx)
	c.stats.Uncollisions++

	notifyUncollision(a, b)
	notifyUncollision(b, a)
}

// DestroyEntity drops every record involving e without notifying anyone.
// The entity registry calls it once, before removing e from the live set.
func (c *Collider) DestroyEntity(e any) {
	kept := c.records[:0]
	for _, r := range c.records {
		if r.involves(e) {
			c.stats.Purged++
			continue
		}
		kept = append(kept, r)
	}
	// Clear the tail so dropped entities can be collected
	for i := len(kept); i < len(c.records); i++ {
		c.records[i] = Record{}
	}
	c.records = kept
}

// RecordIDs looks up record indices.
//
// With both entities given it returns the indices of records for that pair
// (at most one, given that records are unique). With only a it returns the
// index of the first record involving a, so callers that need every record of
// an entity must scan Records. With neither it returns ErrInvalidQuery.
// A nil interface value means "not given".
func (c *Collider) RecordIDs(a, b any) ([]int, error) {
	switch {
	case a != nil && b != nil:
		var ids []int
		for i, r := range c.records {
			if r.matches(a, b) {
				ids = append(ids, i)
			}
		}
		return ids, nil
	case a != nil:
		for i, r := range c.records {
			if r.involves(a) {
				return []int{i}, nil
			}
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("collider: at least one entity is required: %w", core.ErrInvalidQuery)
	}
}

// Touching reports whether a record exists for the pair {a, b}.
func (c *Collider) Touching(a, b any) bool {
	return c.indexOfPair(a, b) >= 0
}

// Records returns a copy of the current records.
func (c *Collider) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of current records.
func (c *Collider) Len() int {
	return len(c.records)
}

// Stats returns the cumulative activity counters.
func (c *Collider) Stats() Stats {
	return c.stats
}

// Reset forgets all records and counters.
func (c *Collider) Reset() {
	c.records = nil
	c.stats = Stats{}
}

func (c *Collider) indexOfPair(a, b any) int {
	for i, r := range c.records {
		if r.matches(a, b) {
			return i
		}
	}
	return -1
}

func (c *Collider) removeAt(i int) {
	copy(c.records[i:], c.records[i+1:])
	c.records[len(c.records)-1] = Record{}
	c.records = c.records[:len(c.records)-1]
}

// uncollisionTracking reports whether any entity wants uncollision notifications.
// Without such an entity records have no consumer and are not kept.
func uncollisionTracking(entities []any) bool {
	for _, e := range entities {
		if _, ok := e.(core.UncollisionHandler); ok {
			return true
		}
	}
	return false
}

func notifyCollision(e, other any, phase core.Phase) {
	if h, ok := e.(core.CollisionHandler); ok {
		h.Collision(other, phase)
	}
}

func notifyUncollision(e, other any) {
	if h, ok := e.(core.UncollisionHandler); ok {
		h.Uncollision(other)
	}
}
