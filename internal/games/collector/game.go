// Package collector implements a small arcade game on the engine: steer a
// circle to pick up coins while bouncing hazards get faster and more numerous.
package collector

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/engine"
	"github.com/vovakirdan/coquette/internal/input"
	"github.com/vovakirdan/coquette/internal/registry"
	"github.com/vovakirdan/coquette/internal/render"
)

// fieldTop is the first row below the status line.
const fieldTop = 1.0

// spawnMargin is the clear space kept around the player when placing things.
const spawnMargin = 4.0

// Game implements the collector game logic.
type Game struct {
	eng        *engine.Engine
	cfg        config.CollectorConfig
	difficulty *config.DifficultyManager

	player    *player
	hazards   int // Live or queued hazards
	score     int
	collected int
	gameOver  bool
	paused    bool
	tickCount int
}

// New creates a collector with the default configuration.
func New() *Game {
	cfg := config.DefaultCollectorConfig()
	return &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "collector"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Coin Collector"
}

// Configure loads the collector config and applies the difficulty preset.
func (g *Game) Configure(opts registry.Options) error {
	cfg, err := config.LoadCollector(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Preset != "" {
		preset := config.DifficultyPreset(opts.Preset)
		switch preset {
		case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		default:
			return fmt.Errorf("collector: unknown difficulty %q", opts.Preset)
		}
		config.ApplyCollectorPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	return nil
}

// Setup starts the first round.
func (g *Game) Setup(e *engine.Engine) error {
	g.eng = e
	g.reset()
	return nil
}

// reset clears the field and queues a fresh round.
func (g *Game) reset() {
	g.eng.Entities().DestroyAll()
	g.score = 0
	g.collected = 0
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
	g.hazards = 0

	view := g.eng.Renderer().ViewSize()
	size := core.V(g.cfg.Player.Diameter, g.cfg.Player.Diameter)
	g.player = &player{
		game: g,
		pos:  core.V((view.X-size.X)/2, (view.Y-size.Y)/2),
		size: size,
	}
	p := g.player
	g.eng.Entities().Create(func() any { return p }, nil)
	g.eng.Entities().Create(func() any { return &overlay{game: g} }, nil)

	for i := 0; i < g.cfg.Coins.Count; i++ {
		g.spawnCoin()
	}
	for i := 0; i < g.cfg.Hazards.Count; i++ {
		g.spawnHazard()
	}
}

// Update handles restart and pause, and adds hazards as difficulty rises.
func (g *Game) Update(time.Duration) {
	in := g.eng.Input()
	if in.Pressed(input.KeyR) {
		g.reset()
		return
	}
	if in.Pressed(input.KeyP) && !g.gameOver {
		g.paused = !g.paused
	}
	if !g.running() {
		return
	}

	g.tickCount++
	target := g.difficulty.Count(g.cfg.Hazards.Count, g.score, g.tickCount)
	for g.hazards < target {
		g.spawnHazard()
	}
}

// Draw renders the status line.
func (g *Game) Draw(c *render.Canvas) {
	scr := c.Screen()
	level := g.difficulty.Level(g.score, g.tickCount)
	scr.DrawTextColor(1, 0, fmt.Sprintf("Score: %d   Coins: %d   Hazards: %d   Level: %.0f%%",
		g.score, g.collected, g.hazards, level*100), core.ColorWhite)

}

// drawPanel frames lines in a box centered on the screen.
func drawPanel(scr *core.Screen, lines ...string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, utf8.RuneCountInString(l))
	}
	w = core.Clamp(w+4, 3, scr.Width())
	h := core.Clamp(len(lines)+2, 3, scr.Height())
	panel := core.NewRect((scr.Width()-w)/2, (scr.Height()-h)/2, w, h)

	scr.DrawRect(panel, ' ')
	scr.DrawBox(panel)
	_, cy := panel.Center()
	top := cy - len(lines)/2
	for i, l := range lines {
		scr.DrawTextCentered(top+i, l)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}

func (g *Game) running() bool {
	return !g.gameOver && !g.paused
}

// collect scores a coin and replaces it. The coin stays live until the next
// tick, so a second contact in the meantime is ignored.
func (g *Game) collect(c *coin) {
	if c.taken || g.gameOver {
		return
	}
	c.taken = true
	g.score += g.cfg.Coins.Points
	g.collected++
	g.eng.Entities().Destroy(c, nil)
	g.spawnCoin()
}

func (g *Game) crash(*hazard) {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.eng.Logger().Info("game over", "game", g.ID(), "score", g.score, "coins", g.collected, "ticks", g.tickCount)
}

func (g *Game) spawnCoin() {
	size := core.V(g.cfg.Coins.Size, g.cfg.Coins.Size)
	c := &coin{pos: g.freeSpot(size), size: size}
	g.eng.Entities().Create(func() any { return c }, nil)
}

func (g *Game) spawnHazard() {
	size := core.V(g.cfg.Hazards.Size, g.cfg.Hazards.Size)
	speed := g.difficulty.Speed(g.cfg.Hazards.Speed, g.score, g.tickCount)
	// Keep clear of the axes so hazards never bounce along a single row or column.
	angle := math.Pi/8 + g.eng.Rand().Float64()*math.Pi/4 + float64(g.eng.Rand().Intn(4))*math.Pi/2
	h := &hazard{game: g, pos: g.freeSpot(size), size: size, vel: velocityAt(angle, speed)}
	g.hazards++
	g.eng.Entities().Create(func() any { return h }, nil)
}

// freeSpot picks a random position on the field away from the player.
// It gives up avoiding the player after a few attempts on crowded fields.
func (g *Game) freeSpot(size core.Vec) core.Vec {
	view := g.eng.Renderer().ViewSize()
	rng := g.eng.Rand()
	keepOut := core.Body{
		P: g.player.pos.Sub(core.V(spawnMargin, spawnMargin)),
		S: g.player.size.Add(core.V(2*spawnMargin, 2*spawnMargin)),
	}

	var pos core.Vec
	for attempt := 0; attempt < 20; attempt++ {
		pos = core.V(
			rng.Float64()*math.Max(0, view.X-size.X),
			fieldTop+rng.Float64()*math.Max(0, view.Y-fieldTop-size.Y),
		)
		if !core.RectanglesIntersecting(core.Body{P: pos, S: size}, keepOut) {
			break
		}
	}
	return pos
}

// clamp keeps a body of the given size inside the field.
func (g *Game) clamp(pos, size core.Vec) core.Vec {
	view := g.eng.Renderer().ViewSize()
	return core.V(
		core.ClampF(pos.X, 0, math.Max(0, view.X-size.X)),
		core.ClampF(pos.Y, fieldTop, math.Max(fieldTop, view.Y-size.Y)),
	)
}

func init() {
	registry.Register("collector", func() registry.Game {
		return New()
	})
}
