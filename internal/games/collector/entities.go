package collector

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/render"
)

// Visual characters for rendering
const (
	PlayerChar = '●'
	CoinChar   = '$'
	HazardChar = '✖'
)

// player is the keyboard-driven circle.
type player struct {
	game *Game
	pos  core.Vec
	size core.Vec
}

func (p *player) Pos() core.Vec                     { return p.pos }
func (p *player) Size() core.Vec                    { return p.size }
func (p *player) BoundingShape() core.BoundingShape { return core.ShapeCircle }
func (p *player) ZIndex() int                       { return 2 }

// Collision handles both pickups and crashes. The player has no separation
// hook, so every contact arrives as PhaseInitial.
func (p *player) Collision(other any, phase core.Phase) {
	switch o := other.(type) {
	case *coin:
		p.game.collect(o)
	case *hazard:
		p.game.crash(o)
	}
}

func (p *player) Update(interval time.Duration) {
	if !p.game.running() {
		return
	}
	dir := p.game.eng.Input().Direction()
	p.pos = p.pos.Add(dir.Scale(p.game.cfg.Player.Speed * interval.Seconds()))
	p.pos = p.game.clamp(p.pos, p.size)
}

func (p *player) Draw(c *render.Canvas) {
	color := core.ColorBrightYellow
	if p.game.gameOver {
		color = core.ColorRed
	}
	c.FillCircle(core.Center(p), p.size.X/2, PlayerChar, color)
}

// coin is a square pickup.
type coin struct {
	pos   core.Vec
	size  core.Vec
	taken bool
}

func (c *coin) Pos() core.Vec  { return c.pos }
func (c *coin) Size() core.Vec { return c.size }

func (c *coin) Draw(cv *render.Canvas) {
	cv.FillRect(c.pos, c.size, CoinChar, core.ColorBrightGreen)
}

// hazard is a circle bouncing around the field.
type hazard struct {
	game *Game
	pos  core.Vec
	size core.Vec
	vel  core.Vec
}

func (h *hazard) Pos() core.Vec                     { return h.pos }
func (h *hazard) Size() core.Vec                    { return h.size }
func (h *hazard) BoundingShape() core.BoundingShape { return core.ShapeCircle }
func (h *hazard) ZIndex() int                       { return 1 }

func (h *hazard) Update(interval time.Duration) {
	if !h.game.running() {
		return
	}
	h.pos = h.pos.Add(h.vel.Scale(interval.Seconds()))
	view := h.game.eng.Renderer().ViewSize()
	if h.pos.X < 0 || h.pos.X+h.size.X > view.X {
		h.vel.X = -h.vel.X
	}
	if h.pos.Y < fieldTop || h.pos.Y+h.size.Y > view.Y {
		h.vel.Y = -h.vel.Y
	}
	h.pos = h.game.clamp(h.pos, h.size)
}

func (h *hazard) Draw(c *render.Canvas) {
	c.FillCircle(core.Center(h), h.size.X/2, HazardChar, core.ColorBrightRed)
}

// velocityAt returns a velocity of the given speed pointing at angle radians.
func velocityAt(angle, speed float64) core.Vec {
	return core.V(math.Cos(angle)*speed, math.Sin(angle)*speed)
}

// overlay frames the pause and game-over messages above every other entity.
// It has no body, so the collider never sees it.
type overlay struct {
	game *Game
}

func (o *overlay) ZIndex() int { return 10 }

func (o *overlay) Draw(c *render.Canvas) {
	g := o.game
	switch {
	case g.gameOver:
		drawPanel(c.Screen(), "GAME OVER", fmt.Sprintf("score %d", g.score), "press R to restart")
	case g.paused:
		drawPanel(c.Screen(), "PAUSED")
	}
}
