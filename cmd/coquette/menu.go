package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/coquette/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start coquette with a game picker menu",
	Long: `Start coquette in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  coquette menu
  coquette menu --fps 30
  coquette menu --db ./coquette.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalRuntime(ec)
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		err = tui.Run(tui.GameOptions{
			GameID:       menuResult.GameID,
			Runtime:      cfg,
			Background:   bg,
			ReleaseAfter: ec.Input.ReleaseAfter,
			Mode:         "tui",
			Store:        store,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "err", err)
		}
	}
}
