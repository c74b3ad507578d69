// Package sandbox implements a scene-driven collision playground.
// Entities come from a YAML scene file; they light up on contact, show
// sustained contact, and revert when they separate. The scene can be
// reloaded while the game runs.
package sandbox

import (
	"fmt"
	"time"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/engine"
	"github.com/vovakirdan/coquette/internal/input"
	"github.com/vovakirdan/coquette/internal/registry"
	"github.com/vovakirdan/coquette/internal/render"
)

// Game is the sandbox top-level object.
type Game struct {
	eng       *engine.Engine
	scene     config.Scene
	scenePath string
	paused    bool
	frames    int

	initial      int
	sustained    int
	uncollisions int
}

// New creates a sandbox with the default scene.
func New() *Game {
	return &Game{scene: config.DefaultScene()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sandbox"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Collision Sandbox"
}

// Configure loads the scene named by opts.ConfigPath, or the first scene
// found on the config search path.
func (g *Game) Configure(opts registry.Options) error {
	scene, err := config.LoadScene(opts.ConfigPath)
	if err != nil {
		return err
	}
	g.scene = scene
	g.scenePath = opts.ConfigPath
	return nil
}

// Setup queues the scene's entities for creation.
func (g *Game) Setup(e *engine.Engine) error {
	g.eng = e
	g.spawn()
	e.Logger().Info("scene loaded", "scene", g.scene.Name, "entities", len(g.scene.Entities))
	return nil
}

// ScenePath returns the file the scene was loaded from, if any.
func (g *Game) ScenePath() string {
	return g.scenePath
}

// Scene returns the current scene.
func (g *Game) Scene() config.Scene {
	return g.scene
}

// ReloadScene replaces every entity with the entities of the scene at path.
// A scene that fails to load leaves the running one untouched.
func (g *Game) ReloadScene(path string) error {
	scene, err := config.ReadScene(path)
	if err != nil {
		return fmt.Errorf("sandbox: reload: %w", err)
	}
	g.scene = scene
	g.scenePath = path
	g.restart()
	g.eng.Logger().Info("scene reloaded", "scene", scene.Name, "path", path, "entities", len(scene.Entities))
	return nil
}

// restart destroys every live entity and recreates the scene. Both steps are
// deferred, and the queue preserves their order.
func (g *Game) restart() {
	g.eng.Entities().DestroyAll()
	g.spawn()
}

func (g *Game) spawn() {
	for _, spec := range g.scene.Entities {
		spec := spec
		g.eng.Entities().Create(func() any { return newEntity(g, spec) }, nil)
	}
}

// Update handles the sandbox's own keys: P pauses, R restarts the scene.
func (g *Game) Update(time.Duration) {
	g.frames++
	in := g.eng.Input()
	if in.Pressed(input.KeyP) {
		g.paused = !g.paused
	}
	if in.Pressed(input.KeyR) {
		g.restart()
	}
}

// Draw renders the status line.
func (g *Game) Draw(c *render.Canvas) {
	scr := c.Screen()
	scr.DrawHLine(0, 0, scr.Width(), ' ')
	status := fmt.Sprintf(" %s | entities %d | contacts %d | initial %d  sustained %d  separated %d",
		g.scene.Name, g.eng.Entities().Len(), g.eng.Collider().Len(),
		g.initial, g.sustained, g.uncollisions)
	if g.paused {
		status += " | PAUSED"
	}
	scr.DrawTextColor(0, 0, status, core.ColorGray)
}

// State returns the sandbox state. The score is the number of contacts begun.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.initial, Paused: g.paused}
}

// Counts returns the collision notifications seen so far, by kind.
func (g *Game) Counts() (initial, sustained, uncollisions int) {
	return g.initial, g.sustained, g.uncollisions
}

func (g *Game) countCollision(phase core.Phase) {
	if phase == core.PhaseSustained {
		g.sustained++
		return
	}
	g.initial++
}

func (g *Game) countUncollision() {
	g.uncollisions++
}

func init() {
	registry.Register("sandbox", func() registry.Game {
		return New()
	})
}
