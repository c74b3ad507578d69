package engine

import (
	"time"

	"github.com/vovakirdan/coquette/internal/collider"
)

// TickReport describes one completed tick.
type TickReport struct {
	Tick     uint64
	Interval time.Duration // Elapsed time handed to the game
	Duration time.Duration // Wall time spent inside Tick
	Entities int
	Records  int
	Delta    collider.Stats // Collision activity during this tick
}

// Observer receives a report after every successful tick.
type Observer interface {
	ObserveTick(r TickReport)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(TickReport)

// ObserveTick calls f(r).
func (f ObserverFunc) ObserveTick(r TickReport) { f(r) }

// Observers fans a report out to several observers in order.
type Observers []Observer

// ObserveTick forwards r to every observer.
func (os Observers) ObserveTick(r TickReport) {
	for _, o := range os {
		if o != nil {
			o.ObserveTick(r)
		}
	}
}

// Totals accumulates tick reports. It is what the headless runner and the
// session store read at the end of a run.
type Totals struct {
	Ticks       uint64
	Stats       collider.Stats
	MaxEntities int
	MaxRecords  int
	Busy        time.Duration
}

// ObserveTick adds r to the totals.
func (t *Totals) ObserveTick(r TickReport) {
	t.Ticks++
	t.Stats = t.Stats.Add(r.Delta)
	t.Busy += r.Duration
	if r.Entities > t.MaxEntities {
		t.MaxEntities = r.Entities
	}
	if r.Records > t.MaxRecords {
		t.MaxRecords = r.Records
	}
}
