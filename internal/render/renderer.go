// Package render draws the game and its entities into a core.Screen.
package render

import (
	"sort"

	"github.com/vovakirdan/coquette/internal/core"
)

// Drawer is implemented by the game and by entities that draw themselves.
type Drawer interface {
	Draw(c *Canvas)
}

// Renderer owns the view and draws one frame per Update.
type Renderer struct {
	screen     *core.Screen
	game       any
	entities   func() []any
	background core.Cell
	viewSize   core.Vec
	viewCenter core.Vec
}

// New creates a renderer drawing into screen. The game is drawn first, then the
// entities returned by the entities func. The view starts centered on the screen.
func New(screen *core.Screen, game any, entities func() []any, background core.Cell) *Renderer {
	size := core.V(float64(screen.Width()), float64(screen.Height()))
	return &Renderer{
		screen:     screen,
		game:       game,
		entities:   entities,
		background: background,
		viewSize:   size,
		viewCenter: size.Scale(0.5),
	}
}

// Screen returns the screen the renderer draws into.
func (r *Renderer) Screen() *core.Screen {
	return r.screen
}

// ViewSize returns the size of the view in world units.
func (r *Renderer) ViewSize() core.Vec {
	return r.viewSize
}

// ViewCenter returns the world position at the center of the view.
func (r *Renderer) ViewCenter() core.Vec {
	return r.viewCenter
}

// SetViewCenter moves the view so that pos is at its center.
func (r *Renderer) SetViewCenter(pos core.Vec) {
	r.viewCenter = core.V(pos.X, pos.Y)
}

// SetBackground changes the cell used to clear the view.
func (r *Renderer) SetBackground(c core.Cell) {
	r.background = c
}

// Resize changes the screen and view size, keeping the view center.
func (r *Renderer) Resize(width, height int) {
	r.screen.Resize(width, height)
	r.viewSize = core.V(float64(width), float64(height))
}

// viewOrigin returns the world position of the view's top-left corner.
func (r *Renderer) viewOrigin() core.Vec {
	return r.viewCenter.Sub(r.viewSize.Scale(0.5))
}

// Update draws one frame: background, then the game, then entities ordered
// by z-index. Entities with equal z-index keep their registry order.
func (r *Renderer) Update() {
	r.screen.FillCell(r.background)
	canvas := NewCanvas(r.screen, r.viewOrigin())

	if d, ok := r.game.(Drawer); ok {
		d.Draw(canvas)
	}

	var ents []any
	if r.entities != nil {
		ents = r.entities()
	}
	sort.SliceStable(ents, func(i, j int) bool {
		return zIndex(ents[i]) < zIndex(ents[j])
	})
	for _, e := range ents {
		if d, ok := e.(Drawer); ok {
			d.Draw(canvas)
		}
	}
}

// OnScreen reports whether obj's bounding rectangle overlaps the view.
func (r *Renderer) OnScreen(obj core.Collidable) bool {
	view := core.Body{P: r.viewOrigin(), S: r.viewSize}
	return core.RectanglesIntersecting(obj, view)
}

func zIndex(e any) int {
	if z, ok := e.(core.ZIndexer); ok {
		return z.ZIndex()
	}
	return 0
}
