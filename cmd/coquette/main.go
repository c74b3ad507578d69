// coquette runs small real-time games on a collision engine, in the terminal.
//
// Usage:
//
//	coquette list                  - List available games
//	coquette play <game>           - Play a game
//	coquette menu                  - Start menu to pick games interactively
//	coquette run <game> --ticks N  - Run a game headless and print collision stats
//	coquette serve                 - Start SSH server for remote play
//	coquette scores <game>         - Show high scores for a game
//	coquette sessions [game]       - Show recorded engine sessions
//
// Global flags:
//
//	--fps <rate>         - Override the tick rate
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.coquette/coquette.db)
//	--config <path>      - Engine config YAML
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/coquette/internal/games/collector"
	_ "github.com/vovakirdan/coquette/internal/games/sandbox"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coquette",
	Short: "coquette - a tiny collision engine for terminal games",
	Long: `coquette runs small real-time games on a collision engine that
reports when objects start touching, keep touching and separate.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  run       - Run a game headless and print collision stats
  serve     - Start SSH server for remote play
  scores    - View high scores
  sessions  - View recorded engine sessions

Examples:
  coquette list
  coquette play sandbox --scene ./scene.yaml --watch
  coquette play collector --difficulty hard
  coquette run sandbox --ticks 600 --seed 42
  coquette serve --ssh :2222 --metrics-addr :9090`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = engine config, default 60)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = engine config, else time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.coquette/coquette.db", "Path to scores and sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(sessionsCmd)
}
