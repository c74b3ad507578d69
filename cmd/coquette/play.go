package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coquette/internal/platform/tui"
	"github.com/vovakirdan/coquette/internal/registry"
)

var (
	flagScene       string
	flagGameConfig  string
	flagDifficulty  string
	flagWatch       bool
	flagMetricsAddr string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  P            - Pause
  R            - Restart
  Ctrl+S       - Save a text screenshot
  ?            - More help
  Q/Ctrl+C     - Quit

Sandbox scenes are YAML files listing entities with their shape, position,
size, velocity and glyph. With --watch the scene reloads whenever the file
is saved.

Difficulty options (collector):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  coquette play sandbox
  coquette play sandbox --scene ./scene.yaml --watch
  coquette play collector --difficulty hard
  coquette play collector --game-config ./my-collector.yaml
  coquette play collector --metrics-addr :9090`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScene, "scene", "", "Path to a sandbox scene YAML")
	playCmd.Flags().StringVar(&flagGameConfig, "game-config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the scene file when it changes")
	playCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	playCmd.MarkFlagsMutuallyExclusive("scene", "game-config")
}

// gameOptions collects the per-game flags.
func gameOptions() registry.Options {
	path := flagScene
	if path == "" {
		path = flagGameConfig
	}
	return registry.Options{ConfigPath: path, Preset: flagDifficulty}
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := checkGame(gameID); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	ec, err := loadEngineConfig()
	if err != nil {
		return err
	}
	bg, err := ec.BackgroundCell()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	m := startMetrics(ctx, flagMetricsAddr, logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(tui.GameOptions{
		GameID:       gameID,
		Game:         gameOptions(),
		Runtime:      terminalRuntime(ec),
		Background:   bg,
		ReleaseAfter: ec.Input.ReleaseAfter,
		Mode:         "tui",
		Watch:        flagWatch,
		Store:        store,
		Metrics:      m,
		Logger:       logger,
	})
}
