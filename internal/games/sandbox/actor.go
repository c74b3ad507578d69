package sandbox

import (
	"math"
	"time"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/render"
)

// PlayerSpeed is how fast the player entity moves, in cells per second.
const PlayerSpeed = 20.0

// Highlight colors for entities in contact.
const (
	InitialColor   = core.ColorBrightRed
	SustainedColor = core.ColorOrange
)

// actor is a scene entity. It reacts to contact but not to separation, so
// it is lit only on the ticks it touches something.
type actor struct {
	game   *Game
	name   string
	pos    core.Vec
	size   core.Vec
	vel    core.Vec
	shape  core.BoundingShape
	cell   core.Cell
	z      int
	player bool

	hit     bool // Set by Collision during this tick
	lit     bool // Shown by Draw
	touches int  // Total collision notifications received
}

// watcher is an actor that also reacts to separation. Its presence turns on
// contact tracking, so its collisions progress from Initial to Sustained.
type watcher struct {
	actor
	contacts map[any]core.Phase
	partings int
}

func newEntity(g *Game, spec config.EntitySpec) any {
	a := actor{
		game:   g,
		name:   spec.Name,
		pos:    spec.Pos,
		size:   spec.Size,
		vel:    spec.Vel,
		shape:  spec.BoundingShape(),
		cell:   spec.Cell(defaultGlyph(spec.BoundingShape())),
		z:      spec.ZIndex,
		player: spec.Player,
	}
	if spec.Watch {
		return &watcher{actor: a, contacts: make(map[any]core.Phase)}
	}
	return &a
}

func defaultGlyph(s core.BoundingShape) rune {
	switch s {
	case core.ShapeCircle:
		return 'o'
	case core.ShapePoint:
		return '.'
	default:
		return '#'
	}
}

func (a *actor) Pos() core.Vec                     { return a.pos }
func (a *actor) Size() core.Vec                    { return a.size }
func (a *actor) BoundingShape() core.BoundingShape { return a.shape }
func (a *actor) ZIndex() int                       { return a.z }
func (a *actor) Name() string                      { return a.name }

func (a *actor) Collision(other any, phase core.Phase) {
	a.hit = true
	a.touches++
	a.game.countCollision(phase)
}

// Update moves the actor: the player follows the keyboard, everything else
// drifts and bounces off the edges of the view.
func (a *actor) Update(interval time.Duration) {
	a.lit, a.hit = a.hit, false
	if a.game.paused {
		return
	}
	dt := interval.Seconds()

	if a.player {
		dir := a.game.eng.Input().Direction()
		a.pos = a.pos.Add(dir.Scale(PlayerSpeed * dt))
		a.pos = a.clampToView()
		return
	}

	a.pos = a.pos.Add(a.vel.Scale(dt))
	view := a.game.eng.Renderer().ViewSize()
	if a.pos.X < 0 || a.pos.X+a.size.X > view.X {
		a.vel.X = -a.vel.X
	}
	if a.pos.Y < 1 || a.pos.Y+a.size.Y > view.Y {
		a.vel.Y = -a.vel.Y
	}
	a.pos = a.clampToView()
}

// clampToView keeps the actor inside the view, below the status line.
func (a *actor) clampToView() core.Vec {
	view := a.game.eng.Renderer().ViewSize()
	return core.V(
		core.ClampF(a.pos.X, 0, math.Max(0, view.X-a.size.X)),
		core.ClampF(a.pos.Y, 1, math.Max(1, view.Y-a.size.Y)),
	)
}

func (a *actor) Draw(c *render.Canvas) {
	cell := a.cell
	if a.lit {
		cell.Color = InitialColor
	}
	a.draw(c, cell)
}

func (a *actor) draw(c *render.Canvas, cell core.Cell) {
	switch a.shape {
	case core.ShapeCircle:
		c.FillCircle(core.Center(a), a.size.X/2, cell.Rune, cell.Color)
	case core.ShapePoint:
		c.Set(a.pos, cell.Rune, cell.Color)
	default:
		c.FillRect(a.pos, a.size, cell.Rune, cell.Color)
	}
}

func (w *watcher) Collision(other any, phase core.Phase) {
	w.actor.Collision(other, phase)
	w.contacts[other] = phase
}

func (w *watcher) Uncollision(other any) {
	delete(w.contacts, other)
	w.partings++
	w.game.countUncollision()
}

// Draw colors the watcher by its most advanced contact phase and reverts
// once every contact has ended.
func (w *watcher) Draw(c *render.Canvas) {
	cell := w.cell
	for _, phase := range w.contacts {
		if phase == core.PhaseSustained {
			cell.Color = SustainedColor
			break
		}
		cell.Color = InitialColor
	}
	w.draw(c, cell)
}

// Touching reports how many entities the watcher is in contact with.
func (w *watcher) Touching() int {
	return len(w.contacts)
}
