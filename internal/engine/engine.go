// Package engine wires the collider, entity registry, runner, renderer and
// inputter together and advances them one frame at a time.
package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coquette/internal/collider"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/entities"
	"github.com/vovakirdan/coquette/internal/input"
	"github.com/vovakirdan/coquette/internal/render"
	"github.com/vovakirdan/coquette/internal/runner"
)

// Engine owns every subsystem of a running game.
type Engine struct {
	cfg      core.RuntimeConfig
	game     any
	logger   *log.Logger
	observer Observer
	rng      *rand.Rand

	runner   *runner.Runner
	collider *collider.Collider
	entities *entities.Entities
	input    *input.Inputter
	renderer *render.Renderer

	ticks uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and its entity registry.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an observer that receives a report after every tick.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithBackground sets the cell the renderer clears the view with.
func WithBackground(c core.Cell) Option {
	return func(e *Engine) {
		e.renderer.SetBackground(c)
	}
}

// New creates an engine for game. The game may implement core.Updater and
// render.Drawer; both hooks are optional.
func New(game any, cfg core.RuntimeConfig, opts ...Option) *Engine {
	def := core.DefaultConfig()
	if cfg.ScreenW <= 0 {
		cfg.ScreenW = def.ScreenW
	}
	if cfg.ScreenH <= 0 {
		cfg.ScreenH = def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		cfg:    cfg,
		game:   game,
		logger: log.New(io.Discard),
		rng:    rand.New(rand.NewSource(seed)),
		runner: runner.New(),
		input:  input.New(),
	}
	e.collider = collider.New()

	// The renderer must exist before options so WithBackground can reach it.
	e.renderer = render.New(core.NewScreen(cfg.ScreenW, cfg.ScreenH), game, e.allEntities, core.Cell{Rune: ' '})
	for _, opt := range opts {
		opt(e)
	}
	e.entities = entities.New(e.runner, e.collider, e.logger)
	return e
}

func (e *Engine) allEntities() []any {
	return e.entities.All()
}

// Tick advances the game by one frame:
// deferred actions, collisions, game update, entity update, render, input rotation.
func (e *Engine) Tick(interval time.Duration) error {
	start := time.Now()
	before := e.collider.Stats()
	n := e.ticks + 1

	e.runner.Update()
	if err := e.entities.Err(); err != nil {
		return fmt.Errorf("engine: tick %d: %w", n, err)
	}
	if err := e.collider.Update(e.entities.All()); err != nil {
		return fmt.Errorf("engine: tick %d: %w", n, err)
	}
	if u, ok := e.game.(core.Updater); ok {
		u.Update(interval)
	}
	e.entities.Update(interval)
	e.renderer.Update()
	e.input.Update()
	e.ticks = n

	if e.observer != nil {
		e.observer.ObserveTick(TickReport{
			Tick:     n,
			Interval: interval,
			Duration: time.Since(start),
			Entities: e.entities.Len(),
			Records:  e.collider.Len(),
			Delta:    e.collider.Stats().Sub(before),
		})
	}
	return nil
}

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Config returns the runtime configuration with defaults applied.
func (e *Engine) Config() core.RuntimeConfig { return e.cfg }

// Game returns the game the engine was created for.
func (e *Engine) Game() any { return e.game }

// Logger returns the engine's logger.
func (e *Engine) Logger() *log.Logger { return e.logger }

// Rand returns the engine's random source, seeded from the runtime config.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Runner returns the deferred-action queue.
func (e *Engine) Runner() *runner.Runner { return e.runner }

// Collider returns the collision engine.
func (e *Engine) Collider() *collider.Collider { return e.collider }

// Entities returns the entity registry.
func (e *Engine) Entities() *entities.Entities { return e.entities }

// Input returns the key-state poller.
func (e *Engine) Input() *input.Inputter { return e.input }

// Renderer returns the renderer.
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Screen returns the screen the last frame was drawn into.
func (e *Engine) Screen() *core.Screen { return e.renderer.Screen() }
