// Package entities holds the authoritative list of live entities.
// Creation and destruction are deferred through the runner and applied at
// the start of the next tick.
package entities

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/runner"
)

// Purger is told about an entity right before it leaves the registry.
// The collider implements it to drop the entity's collision records.
type Purger interface {
	DestroyEntity(e any)
}

// Factory builds a new entity when a deferred create is applied.
type Factory func() any

// Entities is the registry of live entities in insertion order.
type Entities struct {
	runner *runner.Runner
	purger Purger
	logger *log.Logger
	live   []any
	err    error
}

// New creates an empty registry that defers work through r and reports
// destroyed entities to p. p and logger may be nil.
func New(r *runner.Runner, p Purger, logger *log.Logger) *Entities {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Entities{
		runner: r,
		purger: p,
		logger: logger,
	}
}

// Create queues the creation of an entity built by build.
// done, if not nil, receives the new entity once it is live. An entity of an
// uncomparable type is dropped and reported by Err.
func (es *Entities) Create(build Factory, done func(any)) {
	es.runner.Add(func() {
		e := build()
		if err := core.CheckIdentity(e); err != nil {
			es.logger.Error("entity rejected", "err", err)
			if es.err == nil {
				es.err = fmt.Errorf("entities: create: %w", err)
			}
			return
		}
		es.live = append(es.live, e)
		es.logger.Debug("entity created", "type", fmt.Sprintf("%T", e), "live", len(es.live))
		if done != nil {
			done(e)
		}
	})
}

// Destroy queues the removal of e. If e is not live when the action runs,
// nothing happens and done is not called.
func (es *Entities) Destroy(e any, done func()) {
	es.runner.Add(func() {
		for i, live := range es.live {
			if live != e {
				continue
			}
			if es.purger != nil {
				es.purger.DestroyEntity(e)
			}
			es.live = append(es.live[:i], es.live[i+1:]...)
			es.logger.Debug("entity destroyed", "type", fmt.Sprintf("%T", e), "live", len(es.live))
			if done != nil {
				done()
			}
			return
		}
	})
}

// DestroyAll queues the removal of every entity that is live when the action runs.
func (es *Entities) DestroyAll() {
	es.runner.Add(func() {
		for _, e := range es.All() {
			if es.purger != nil {
				es.purger.DestroyEntity(e)
			}
		}
		es.live = nil
	})
}

// Err returns the first create rejected since the last call, and clears it.
func (es *Entities) Err() error {
	err := es.err
	es.err = nil
	return err
}

// All returns a snapshot of the live entities in insertion order.
func (es *Entities) All() []any {
	out := make([]any, len(es.live))
	copy(out, es.live)
	return out
}

// Len returns the number of live entities.
func (es *Entities) Len() int {
	return len(es.live)
}

// Update calls Update on every live entity that implements core.Updater.
func (es *Entities) Update(interval time.Duration) {
	for _, e := range es.All() {
		if u, ok := e.(core.Updater); ok {
			u.Update(interval)
		}
	}
}

// Of returns the live entities of type T, in insertion order.
func Of[T any](es *Entities) []T {
	var out []T
	for _, e := range es.live {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
