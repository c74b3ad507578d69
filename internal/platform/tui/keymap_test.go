package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/coquette/internal/input"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   input.Key
		wantOK bool
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, input.KeyUpArrow, true},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, input.KeyLeftArrow, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, input.KeyEnter, true},
		{"space type", tea.KeyMsg{Type: tea.KeySpace}, input.KeySpace, true},
		{"space rune", runeKey(' '), input.KeySpace, true},
		{"f5", tea.KeyMsg{Type: tea.KeyF5}, input.KeyF5, true},
		{"lower a", runeKey('a'), input.KeyA, true},
		{"upper Z", runeKey('Z'), input.KeyZ, true},
		{"digit 7", runeKey('7'), input.KeyDigit7, true},
		{"slash", runeKey('/'), input.KeyForwardSlash, true},
		{"bracket", runeKey('['), input.KeyOpenSquareBracket, true},
		{"unknown rune", runeKey('é'), 0, false},
		{"ctrl key", tea.KeyMsg{Type: tea.KeyCtrlA}, 0, false},
		{"pasted runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.MapKey(tt.msg)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MapKey() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"quit", runeKey('q'), MenuActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, MenuActionQuit},
		{"vim up", runeKey('k'), MenuActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{"other", runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameKeyMapBackDisabledByDefault(t *testing.T) {
	km := DefaultGameKeyMap()
	if km.Back.Enabled() {
		t.Error("Back binding enabled by default")
	}
	for _, b := range km.ShortHelp() {
		if b.Help().Key == "" {
			t.Errorf("binding %v has no help", b.Keys())
		}
	}
}
