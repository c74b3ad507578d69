// Package config provides YAML-based engine, scene and game configuration
// loading for coquette.
package config

import (
	"time"

	"github.com/vovakirdan/coquette/internal/core"
)

// EngineConfig contains settings shared by every game.
type EngineConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	TickRate   int              `yaml:"tick_rate"` // Frames per second
	Seed       int64            `yaml:"seed"`      // 0 means seed from the clock
	Background BackgroundConfig `yaml:"background"`
	Input      InputConfig      `yaml:"input"`
}

// ScreenConfig is the initial view size in terminal cells.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BackgroundConfig is the cell the renderer clears the view with.
type BackgroundConfig struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// InputConfig tunes keyboard handling.
type InputConfig struct {
	// Terminals report presses only; a key counts as released once no
	// repeat has arrived for this long.
	ReleaseAfter time.Duration `yaml:"release_after"`
}

// Runtime converts the config into the engine's runtime settings.
func (c EngineConfig) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  c.Screen.Width,
		ScreenH:  c.Screen.Height,
		TickRate: c.TickRate,
		Seed:     c.Seed,
	}
}

// BackgroundCell resolves the background glyph and color.
func (c EngineConfig) BackgroundCell() (core.Cell, error) {
	color, err := core.ParseColor(c.Background.Color)
	if err != nil {
		return core.Cell{}, err
	}
	return core.Cell{Rune: firstRune(c.Background.Glyph, ' '), Color: color}, nil
}

// Scene describes the entities a sandbox session starts with.
type Scene struct {
	Name     string       `yaml:"name"`
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec describes one scene entity.
type EntitySpec struct {
	Name   string   `yaml:"name"`
	Shape  string   `yaml:"shape"` // rectangle, circle or point
	Pos    core.Vec `yaml:"pos"`
	Size   core.Vec `yaml:"size"`
	Vel    core.Vec `yaml:"vel"` // Cells per second
	ZIndex int      `yaml:"z_index"`
	Glyph  string   `yaml:"glyph"`
	Color  string   `yaml:"color"`
	Player bool     `yaml:"player"` // Moved by the arrow keys
	Watch  bool     `yaml:"watch"`  // Reacts to separation as well as contact
}

// CollectorConfig contains all configuration for the collector game.
type CollectorConfig struct {
	Player     CollectorPlayer  `yaml:"player"`
	Coins      CollectorCoins   `yaml:"coins"`
	Hazards    CollectorHazards `yaml:"hazards"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CollectorPlayer defines the player circle.
type CollectorPlayer struct {
	Diameter float64 `yaml:"diameter"`
	Speed    float64 `yaml:"speed"` // Cells per second
}

// CollectorCoins defines the coins on the field.
type CollectorCoins struct {
	Count  int     `yaml:"count"`
	Size   float64 `yaml:"size"`
	Points int     `yaml:"points"`
}

// CollectorHazards defines the bouncing hazards.
type CollectorHazards struct {
	Count int     `yaml:"count"`
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"` // Cells per second
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to hazard speed at max difficulty
	ExtraHazards    int     `yaml:"extra_hazards"`    // Hazards added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func firstRune(s string, def rune) rune {
	for _, r := range s {
		return r
	}
	return def
}
