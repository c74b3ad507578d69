package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/coquette/internal/core"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

//go:embed defaults/sandbox.yaml
var defaultSandboxYAML []byte

//go:embed defaults/collector.yaml
var defaultCollectorYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	rt := core.DefaultConfig()
	return EngineConfig{
		Screen:     ScreenConfig{Width: rt.ScreenW, Height: rt.ScreenH},
		TickRate:   rt.TickRate,
		Background: BackgroundConfig{Glyph: " ", Color: "default"},
		Input:      InputConfig{ReleaseAfter: 150 * time.Millisecond},
	}
}

// DefaultScene returns a small scene with one entity of each shape.
func DefaultScene() Scene {
	return Scene{
		Name: "default",
		Entities: []EntitySpec{
			{Name: "player", Shape: "point", Pos: core.V(10, 12), Glyph: "@", Color: "bright_yellow", Player: true, Watch: true},
			{Name: "box", Shape: "rectangle", Pos: core.V(30, 8), Size: core.V(8, 4), Vel: core.V(6, 3), Glyph: "#", Color: "cyan"},
			{Name: "ball", Shape: "circle", Pos: core.V(50, 10), Size: core.V(6, 6), Vel: core.V(-5, 4), Glyph: "o", Color: "magenta", Watch: true},
		},
	}
}

// DefaultCollectorConfig returns the default collector configuration.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		Player:  CollectorPlayer{Diameter: 2, Speed: 20},
		Coins:   CollectorCoins{Count: 5, Size: 1, Points: 10},
		Hazards: CollectorHazards{Count: 2, Size: 3, Speed: 8},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "score", MaxAt: 300},
			Scaling:      ScalingConfig{SpeedMultiplier: 1.0, ExtraHazards: 4},
		},
	}
}
