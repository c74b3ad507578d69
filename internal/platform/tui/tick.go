// Package tui provides the Bubble Tea integration for coquette.
// It drives the engine from the terminal UI loop, maps terminal keys onto
// the inputter and hosts the menu, scoreboard and SSH front ends.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/coquette/internal/engine"
)

// TickMsg is sent to trigger one engine frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(engine.FrameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
