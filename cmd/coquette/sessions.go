package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coquette/internal/storage"
)

var flagSessionLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions [game]",
	Short: "Show recorded engine sessions",
	Long: `List the most recent engine sessions, newest first. Each interactive,
SSH or headless run records how many ticks it lasted and how much collision
activity it saw.

Examples:
  coquette sessions
  coquette sessions sandbox --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionLimit, "limit", 20, "Maximum sessions to show")
}

func runSessions(_ *cobra.Command, args []string) error {
	var gameID string
	if len(args) == 1 {
		gameID = args[0]
		if err := checkGame(gameID); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(gameID, flagSessionLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-16s  %-10s  %-9s  %8s  %8s  %8s  %8s\n",
		"ID", "Date", "Game", "Mode", "Ticks", "Contacts", "Apart", "Time")
	for _, s := range sessions {
		fmt.Printf("  %-8s  %-16s  %-10s  %-9s  %8d  %8d  %8d  %8s\n",
			s.SessionID[:8],
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.GameID,
			s.Mode,
			s.Ticks,
			s.Initial,
			s.Uncollisions,
			s.Duration.Round(time.Second),
		)
	}
	return nil
}
