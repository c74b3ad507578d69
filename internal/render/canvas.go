package render

import (
	"math"

	"github.com/vovakirdan/coquette/internal/core"
)

// Canvas draws in world coordinates onto a screen, translated by the view.
// World cell (x, y) covers [x, x+1) × [y, y+1).
type Canvas struct {
	screen *core.Screen
	offset core.Vec // World position of the screen's top-left cell
}

// NewCanvas creates a canvas whose top-left screen cell shows world position offset.
func NewCanvas(screen *core.Screen, offset core.Vec) *Canvas {
	return &Canvas{screen: screen, offset: offset}
}

// Screen returns the underlying screen for drawing in screen coordinates (HUDs).
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// Offset returns the world position of the top-left screen cell.
func (c *Canvas) Offset() core.Vec {
	return c.offset
}

// toScreen converts a world position to a screen cell.
func (c *Canvas) toScreen(p core.Vec) (int, int) {
	return int(math.Floor(p.X - c.offset.X)), int(math.Floor(p.Y - c.offset.Y))
}

// Set draws a single cell at world position p.
func (c *Canvas) Set(p core.Vec, r rune, color core.Color) {
	x, y := c.toScreen(p)
	c.screen.SetCell(x, y, core.Cell{Rune: r, Color: color})
}

// FillRect fills every cell touched by the world rectangle [pos, pos+size].
// Degenerate rectangles still cover one cell.
func (c *Canvas) FillRect(pos, size core.Vec, r rune, color core.Color) {
	x0, y0, x1, y1 := c.cellSpan(pos, size)
	cell := core.Cell{Rune: r, Color: color}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.screen.SetCell(x, y, cell)
		}
	}
}

// StrokeRect draws the outline of the world rectangle [pos, pos+size].
func (c *Canvas) StrokeRect(pos, size core.Vec, r rune, color core.Color) {
	x0, y0, x1, y1 := c.cellSpan(pos, size)
	cell := core.Cell{Rune: r, Color: color}
	for x := x0; x < x1; x++ {
		c.screen.SetCell(x, y0, cell)
		c.screen.SetCell(x, y1-1, cell)
	}
	for y := y0; y < y1; y++ {
		c.screen.SetCell(x0, y, cell)
		c.screen.SetCell(x1-1, y, cell)
	}
}

// FillCircle fills the cells whose centers lie within radius of center.
// A circle smaller than a cell still covers the cell holding its center.
func (c *Canvas) FillCircle(center core.Vec, radius float64, r rune, color core.Color) {
	cell := core.Cell{Rune: r, Color: color}
	cx, cy := c.toScreen(center)
	c.screen.SetCell(cx, cy, cell)

	x0, y0, x1, y1 := c.cellSpan(center.Sub(core.V(radius, radius)), core.V(radius*2, radius*2))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mid := core.V(float64(x)+0.5+c.offset.X, float64(y)+0.5+c.offset.Y)
			if core.Distance(mid, center) <= radius {
				c.screen.SetCell(x, y, cell)
			}
		}
	}
}

// DrawText writes text starting at world position p.
func (c *Canvas) DrawText(p core.Vec, text string, color core.Color) {
	x, y := c.toScreen(p)
	c.screen.DrawTextColor(x, y, text, color)
}

// cellSpan returns the half-open screen cell range covering a world rectangle.
func (c *Canvas) cellSpan(pos, size core.Vec) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(pos.X - c.offset.X))
	y0 = int(math.Floor(pos.Y - c.offset.Y))
	x1 = int(math.Ceil(pos.X + size.X - c.offset.X))
	y1 = int(math.Ceil(pos.Y + size.Y - c.offset.Y))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}
