package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coquette/internal/engine"
	"github.com/vovakirdan/coquette/internal/registry"
	"github.com/vovakirdan/coquette/internal/storage"
)

var (
	flagTicks    uint64
	flagRealtime bool
	flagNoSave   bool
	flagShow     bool
)

var runCmd = &cobra.Command{
	Use:   "run <game>",
	Short: "Run a game headless and print collision stats",
	Long: `Run a game without a terminal UI for a fixed number of ticks and
print how much collision activity it saw. By default ticks run back to back
with a fixed frame interval, so a run is reproducible for a given --seed.

The run stops early if the game ends. The session is recorded in the
database unless --no-save is given.

Examples:
  coquette run sandbox --ticks 600 --seed 42
  coquette run sandbox --scene ./scene.yaml --show
  coquette run collector --ticks 0 --realtime --metrics-addr :9090`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Uint64Var(&flagTicks, "ticks", 600, "Ticks to run (0 = until the game ends or Ctrl+C)")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at the tick rate instead of running flat out")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the session")
	runCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final frame")
	runCmd.Flags().StringVar(&flagScene, "scene", "", "Path to a sandbox scene YAML")
	runCmd.Flags().StringVar(&flagGameConfig, "game-config", "", "Path to custom game config YAML")
	runCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	runCmd.MarkFlagsMutuallyExclusive("scene", "game-config")
}

func runRun(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := checkGame(gameID); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	totals := &engine.Totals{}
	observers := engine.Observers{totals}
	if m := startMetrics(ctx, flagMetricsAddr, logger); m != nil {
		observers = append(observers, m.Observer(gameID))
	}

	game, eng, err := registry.Launch(gameID, gameOptions(), ec.Runtime(),
		engine.WithLogger(logger.With("game", gameID)),
		engine.WithBackground(bg),
		engine.WithObserver(observers),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	if flagRealtime {
		err = eng.Run(ctx, ec.TickRate, flagTicks)
	} else {
		err = eng.Simulate(ctx, engine.FrameInterval(ec.TickRate), flagTicks)
	}
	elapsed := time.Since(start)

	ended := "completed"
	switch {
	case errors.Is(err, engine.ErrGameOver):
		ended = "game over"
	case errors.Is(err, context.Canceled):
		ended = "interrupted"
	case err != nil:
		return err
	}

	state := game.State()
	printReport(game.Title(), ended, state.Score, totals, elapsed)
	if flagShow {
		fmt.Println()
		fmt.Println(eng.Screen().String())
	}

	if flagNoSave || totals.Ticks == 0 {
		return nil
	}
	store := openStore(logger)
	if store == nil {
		return nil
	}
	defer store.Close()

	id, err := store.SaveSession(storage.Session{
		GameID:       gameID,
		Mode:         "headless",
		Ticks:        int64(totals.Ticks),
		Score:        state.Score,
		Initial:      int64(totals.Stats.Initial),
		Sustained:    int64(totals.Stats.Sustained),
		Uncollisions: int64(totals.Stats.Uncollisions),
		Purged:       int64(totals.Stats.Purged),
		Duration:     elapsed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\nSession: %s\n", id)
	return nil
}

func printReport(title, ended string, score int, t *engine.Totals, elapsed time.Duration) {
	fmt.Printf("%s - %s\n\n", title, ended)
	fmt.Printf("  %-22s %d\n", "Ticks", t.Ticks)
	fmt.Printf("  %-22s %d\n", "Score", score)
	fmt.Printf("  %-22s %d\n", "Collisions (initial)", t.Stats.Initial)
	fmt.Printf("  %-22s %d\n", "Collisions (sustained)", t.Stats.Sustained)
	fmt.Printf("  %-22s %d\n", "Separations", t.Stats.Uncollisions)
	fmt.Printf("  %-22s %d\n", "Records purged", t.Stats.Purged)
	fmt.Printf("  %-22s %d\n", "Peak entities", t.MaxEntities)
	fmt.Printf("  %-22s %d\n", "Peak records", t.MaxRecords)
	fmt.Printf("  %-22s %s\n", "Wall time", elapsed.Round(time.Millisecond))
	if t.Ticks > 0 {
		fmt.Printf("  %-22s %s\n", "Avg tick", (t.Busy / time.Duration(t.Ticks)).Round(time.Microsecond))
	}
}
