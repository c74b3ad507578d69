package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/coquette/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the engine settings.
func (c EngineConfig) Validate() error {
	switch {
	case c.Screen.Width < 1 || c.Screen.Height < 1:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	case c.TickRate < 1 || c.TickRate > 240:
		return fmt.Errorf("%w: tick_rate %d outside 1..240", ErrInvalidConfig, c.TickRate)
	case c.Input.ReleaseAfter < 0:
		return fmt.Errorf("%w: negative input.release_after", ErrInvalidConfig)
	}
	if _, err := c.BackgroundCell(); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the collector settings.
func (c CollectorConfig) Validate() error {
	switch {
	case c.Player.Diameter <= 0:
		return fmt.Errorf("%w: player.diameter must be positive", ErrInvalidConfig)
	case c.Coins.Size <= 0:
		return fmt.Errorf("%w: coins.size must be positive", ErrInvalidConfig)
	case c.Hazards.Size <= 0:
		return fmt.Errorf("%w: hazards.size must be positive", ErrInvalidConfig)
	case c.Coins.Count < 1:
		return fmt.Errorf("%w: coins.count must be at least 1", ErrInvalidConfig)
	case c.Hazards.Count < 0:
		return fmt.Errorf("%w: negative hazards.count", ErrInvalidConfig)
	}
	return nil
}

// Validate checks every entity of the scene. An unknown shape name yields an
// error wrapping core.ErrUnsupportedShape.
func (s Scene) Validate() error {
	for i, e := range s.Entities {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		shape, err := core.ParseShape(e.Shape)
		if err != nil {
			return fmt.Errorf("scene %q: entity %s: %w", s.Name, name, err)
		}
		if _, err := core.ParseColor(e.Color); err != nil {
			return fmt.Errorf("scene %q: entity %s: %w: %v", s.Name, name, ErrInvalidConfig, err)
		}
		if e.Size.X < 0 || e.Size.Y < 0 {
			return fmt.Errorf("scene %q: entity %s: %w: negative size", s.Name, name, ErrInvalidConfig)
		}
		// Points may be sizeless; a flat rectangle or circle has a degenerate edge.
		if shape != core.ShapePoint && (e.Size.X == 0 || e.Size.Y == 0) {
			return fmt.Errorf("scene %q: entity %s: %w: %s needs a non-zero size", s.Name, name, ErrInvalidConfig, shape)
		}
		if utf8.RuneCountInString(e.Glyph) > 1 {
			return fmt.Errorf("scene %q: entity %s: %w: glyph %q is more than one character", s.Name, name, ErrInvalidConfig, e.Glyph)
		}
	}
	return nil
}

// BoundingShape resolves the entity's bounding shape.
func (e EntitySpec) BoundingShape() core.BoundingShape {
	shape, _ := core.ParseShape(e.Shape)
	return shape
}

// Cell resolves the entity's glyph and color, falling back to def's glyph.
func (e EntitySpec) Cell(def rune) core.Cell {
	color, _ := core.ParseColor(e.Color)
	return core.Cell{Rune: firstRune(e.Glyph, def), Color: color}
}
