package collector

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/engine"
	"github.com/vovakirdan/coquette/internal/entities"
	"github.com/vovakirdan/coquette/internal/input"
	"github.com/vovakirdan/coquette/internal/registry"
)

const step = 100 * time.Millisecond

func newGame(t *testing.T, cfg config.CollectorConfig, seed int64) (*Game, *engine.Engine) {
	t.Helper()
	g := New()
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	e := engine.New(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: seed})
	if err := g.Setup(e); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return g, e
}

func tick(t *testing.T, e *engine.Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.Tick(step); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
}

// quietConfig has no hazards and no difficulty progression.
func quietConfig() config.CollectorConfig {
	cfg := config.DefaultCollectorConfig()
	cfg.Hazards.Count = 0
	cfg.Difficulty.Enabled = false
	return cfg
}

func TestSetupSpawnsField(t *testing.T) {
	cfg := config.DefaultCollectorConfig()
	cfg.Difficulty.Enabled = false
	g, e := newGame(t, cfg, 7)

	if e.Entities().Len() != 0 {
		t.Fatal("entities created before the first tick")
	}
	tick(t, e, 1)

	if got := len(entities.Of[*player](e.Entities())); got != 1 {
		t.Errorf("players = %d, want 1", got)
	}
	if got := len(entities.Of[*coin](e.Entities())); got != cfg.Coins.Count {
		t.Errorf("coins = %d, want %d", got, cfg.Coins.Count)
	}
	if got := len(entities.Of[*hazard](e.Entities())); got != cfg.Hazards.Count {
		t.Errorf("hazards = %d, want %d", got, cfg.Hazards.Count)
	}
	if g.State().GameOver {
		t.Error("game over on the first tick")
	}
}

func TestCollectCoin(t *testing.T) {
	cfg := quietConfig()
	g, e := newGame(t, cfg, 1)
	tick(t, e, 1)

	target := entities.Of[*coin](e.Entities())[0]
	target.pos = g.player.pos
	tick(t, e, 1)

	if g.State().Score != cfg.Coins.Points {
		t.Errorf("score = %d, want %d", g.State().Score, cfg.Coins.Points)
	}
	if !target.taken {
		t.Error("coin not marked taken")
	}

	// The coin is removed and replaced at the start of the next tick.
	tick(t, e, 1)
	coins := entities.Of[*coin](e.Entities())
	if len(coins) != cfg.Coins.Count {
		t.Errorf("coins after pickup = %d, want %d", len(coins), cfg.Coins.Count)
	}
	for _, c := range coins {
		if c == target {
			t.Error("collected coin still live")
		}
	}
	if g.State().Score != cfg.Coins.Points {
		t.Errorf("coin scored twice: score = %d", g.State().Score)
	}
}

func TestHazardEndsGameAndRestart(t *testing.T) {
	cfg := config.DefaultCollectorConfig()
	cfg.Hazards.Count = 1
	cfg.Difficulty.Enabled = false
	g, e := newGame(t, cfg, 3)
	tick(t, e, 1)

	h := entities.Of[*hazard](e.Entities())[0]
	h.pos = g.player.pos
	tick(t, e, 1)

	if !g.State().GameOver {
		t.Fatal("touching a hazard did not end the game")
	}
	frozen := h.pos
	tick(t, e, 2)
	if h.pos != frozen {
		t.Error("hazard kept moving after game over")
	}

	e.Input().KeyDown(input.KeyR)
	tick(t, e, 1)
	e.Input().KeyUp(input.KeyR)
	tick(t, e, 1)

	state := g.State()
	if state.GameOver || state.Score != 0 {
		t.Errorf("state after restart = %+v", state)
	}
	want := 2 + cfg.Coins.Count + cfg.Hazards.Count // player and overlay
	if got := e.Entities().Len(); got != want {
		t.Errorf("entities after restart = %d, want %d", got, want)
	}
	for _, other := range entities.Of[*hazard](e.Entities()) {
		if other == h {
			t.Error("old hazard survived restart")
		}
	}
}

func TestPlayerMovesAndPauses(t *testing.T) {
	g, e := newGame(t, quietConfig(), 1)
	tick(t, e, 1)
	start := g.player.pos

	e.Input().KeyDown(input.KeyLeftArrow)
	tick(t, e, 1)
	if g.player.pos.X >= start.X {
		t.Errorf("player x = %v, want less than %v", g.player.pos.X, start.X)
	}
	e.Input().KeyUp(input.KeyLeftArrow)

	e.Input().KeyDown(input.KeyP)
	tick(t, e, 1)
	e.Input().KeyUp(input.KeyP)
	if !g.State().Paused {
		t.Fatal("P did not pause")
	}

	e.Input().KeyDown(input.KeyRightArrow)
	before := g.player.pos
	tick(t, e, 3)
	if g.player.pos != before {
		t.Error("player moved while paused")
	}
}

func TestPausePanelCoversField(t *testing.T) {
	_, e := newGame(t, quietConfig(), 5)
	tick(t, e, 1)
	scr := e.Screen()
	if got := scr.Get(35, 10); got == '┌' {
		t.Fatal("panel drawn while running")
	}

	e.Input().KeyDown(input.KeyP)
	tick(t, e, 1)

	// 80x24 screen: a one-line panel is 10x3 at (35,10), text on row 11.
	if got := scr.Get(35, 10); got != '┌' {
		t.Errorf("panel corner = %q, want '┌'", got)
	}
	if got := scr.Get(44, 12); got != '┘' {
		t.Errorf("panel corner = %q, want '┘'", got)
	}
	// The player sits at (39,11) underneath the panel text.
	if got := scr.Get(39, 11); got != 'U' {
		t.Errorf("cell over the player = %q, want 'U' of PAUSED", got)
	}
}

func TestDifficultyAddsHazards(t *testing.T) {
	cfg := config.DefaultCollectorConfig()
	cfg.Hazards.Count = 0
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     config.ScalingConfig{ExtraHazards: 3},
	}
	g, e := newGame(t, cfg, 5)
	tick(t, e, 1)
	if got := len(entities.Of[*hazard](e.Entities())); got != 0 {
		t.Fatalf("hazards at score 0 = %d, want 0", got)
	}

	g.score = 10
	tick(t, e, 2)
	if got := len(entities.Of[*hazard](e.Entities())); got != 3 {
		t.Errorf("hazards at max difficulty = %d, want 3", got)
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultCollectorConfig()
	run := func() []core.Vec {
		_, e := newGame(t, cfg, 12345)
		tick(t, e, 20)
		var out []core.Vec
		for _, ent := range e.Entities().All() {
			if c, ok := ent.(core.Collidable); ok {
				out = append(out, c.Pos())
			}
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("entity counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entity %d position differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestConfigurePreset(t *testing.T) {
	g := New()
	if err := g.Configure(registry.Options{Preset: "hard"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if g.cfg.Hazards.Count != 4 {
		t.Errorf("hard preset hazards = %d, want 4", g.cfg.Hazards.Count)
	}
	if err := g.Configure(registry.Options{Preset: "nightmare"}); err == nil {
		t.Error("Configure accepted an unknown preset")
	}
	if !registry.Exists("collector") {
		t.Error("collector not registered")
	}
}

func TestConfigureRejectsZeroCoinSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collector.yaml")
	if err := os.WriteFile(path, []byte("coins: {count: 5, size: 0}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := New().Configure(registry.Options{ConfigPath: path})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Configure error = %v, want ErrInvalidConfig", err)
	}
}

func TestHeadlessRunEndsOnCrash(t *testing.T) {
	cfg := config.DefaultCollectorConfig()
	cfg.Hazards.Count = 1
	cfg.Difficulty.Enabled = false
	g, e := newGame(t, cfg, 9)
	tick(t, e, 1)
	entities.Of[*hazard](e.Entities())[0].pos = g.player.pos

	if err := e.Run(t.Context(), 1000, 50); err != engine.ErrGameOver {
		t.Errorf("Run = %v, want ErrGameOver", err)
	}
}
