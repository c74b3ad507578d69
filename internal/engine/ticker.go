package engine

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/coquette/internal/core"
)

// Ticker measures the interval between consecutive frames.
type Ticker struct {
	now     func() time.Time
	prev    time.Time
	running bool
}

// NewTicker creates a stopped ticker on the wall clock.
func NewTicker() *Ticker {
	return &Ticker{now: time.Now}
}

// Start begins timing from now.
func (t *Ticker) Start() {
	t.prev = t.now()
	t.running = true
}

// Stop halts the ticker. Next reports false until Start is called again.
func (t *Ticker) Stop() {
	t.running = false
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	return t.running
}

// Next returns the time elapsed since the previous call to Next or Start.
func (t *Ticker) Next() (time.Duration, bool) {
	if !t.running {
		return 0, false
	}
	now := t.now()
	interval := now.Sub(t.prev)
	t.prev = now
	return interval, true
}

// FrameInterval returns the frame period for a tick rate, defaulting to 60 FPS.
func FrameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}

// ErrGameOver is returned by Run when the game reports that it has ended.
var ErrGameOver = errors.New("engine: game over")

type stateReporter interface {
	State() core.GameState
}

// Run drives the engine headlessly at tickRate frames per second until ctx is
// done, maxTicks ticks have run (0 means no limit), the game ends, or a tick fails.
func (e *Engine) Run(ctx context.Context, tickRate int, maxTicks uint64) error {
	clock := time.NewTicker(FrameInterval(tickRate))
	defer clock.Stop()

	ticker := NewTicker()
	ticker.Start()
	defer ticker.Stop()

	e.logger.Info("headless run started", "tick_rate", tickRate, "max_ticks", maxTicks)
	var done uint64
	for maxTicks == 0 || done < maxTicks {
		select {
		case <-ctx.Done():
			e.logger.Info("headless run cancelled", "ticks", done)
			return ctx.Err()
		case <-clock.C:
		}

		interval, _ := ticker.Next()
		if err := e.step(interval, done+1); err != nil {
			return err
		}
		done++
	}
	e.logger.Info("headless run finished", "ticks", done)
	return nil
}

// Simulate runs maxTicks ticks back to back, handing the game a fixed
// interval each time, so a run is reproducible for a given seed. It stops
// early on the same conditions as Run.
func (e *Engine) Simulate(ctx context.Context, interval time.Duration, maxTicks uint64) error {
	e.logger.Info("simulation started", "interval", interval, "max_ticks", maxTicks)
	var done uint64
	for maxTicks == 0 || done < maxTicks {
		if err := ctx.Err(); err != nil {
			e.logger.Info("simulation cancelled", "ticks", done)
			return err
		}
		if err := e.step(interval, done+1); err != nil {
			return err
		}
		done++
	}
	e.logger.Info("simulation finished", "ticks", done)
	return nil
}

// step runs one tick and reports ErrGameOver once the game has ended.
func (e *Engine) step(interval time.Duration, n uint64) error {
	if err := e.Tick(interval); err != nil {
		e.logger.Error("tick failed", "err", err)
		return err
	}
	if s, ok := e.game.(stateReporter); ok && s.State().GameOver {
		e.logger.Info("game over", "ticks", n, "score", s.State().Score)
		return ErrGameOver
	}
	return nil
}
