package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/coquette/internal/input"
)

// KeyMapper translates Bubble Tea key messages to engine key codes.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

var specialKeys = map[tea.KeyType]input.Key{
	tea.KeyUp:        input.KeyUpArrow,
	tea.KeyDown:      input.KeyDownArrow,
	tea.KeyLeft:      input.KeyLeftArrow,
	tea.KeyRight:     input.KeyRightArrow,
	tea.KeyEnter:     input.KeyEnter,
	tea.KeyEsc:       input.KeyEsc,
	tea.KeyTab:       input.KeyTab,
	tea.KeyBackspace: input.KeyBackspace,
	tea.KeySpace:     input.KeySpace,
	tea.KeyHome:      input.KeyHome,
	tea.KeyEnd:       input.KeyEnd,
	tea.KeyPgUp:      input.KeyPageUp,
	tea.KeyPgDown:    input.KeyPageDown,
	tea.KeyInsert:    input.KeyInsert,
	tea.KeyDelete:    input.KeyDelete,
	tea.KeyF1:        input.KeyF1,
	tea.KeyF2:        input.KeyF2,
	tea.KeyF3:        input.KeyF3,
	tea.KeyF4:        input.KeyF4,
	tea.KeyF5:        input.KeyF5,
	tea.KeyF6:        input.KeyF6,
	tea.KeyF7:        input.KeyF7,
	tea.KeyF8:        input.KeyF8,
	tea.KeyF9:        input.KeyF9,
	tea.KeyF10:       input.KeyF10,
	tea.KeyF11:       input.KeyF11,
	tea.KeyF12:       input.KeyF12,
}

var punctuation = map[rune]input.Key{
	' ':  input.KeySpace,
	';':  input.KeySemiColon,
	'=':  input.KeyEquals,
	',':  input.KeyComma,
	'-':  input.KeyDash,
	'.':  input.KeyPeriod,
	'/':  input.KeyForwardSlash,
	'`':  input.KeyGraveAccent,
	'[':  input.KeyOpenSquareBracket,
	'\\': input.KeyBackSlash,
	']':  input.KeyCloseSquareBracket,
	'\'': input.KeySingleQuote,
}

// MapKey translates a key message to the key code a game sees.
// ok is false for keys the engine has no code for.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (k input.Key, ok bool) {
	if k, ok := specialKeys[msg.Type]; ok {
		return k, true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	switch {
	case r >= 'a' && r <= 'z':
		return input.KeyA + input.Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return input.KeyA + input.Key(r-'A'), true
	case unicode.IsDigit(r) && r <= '9':
		return input.KeyDigit0 + input.Key(r-'0'), true
	}
	k, ok = punctuation[r]
	return k, ok
}

// GameKeyMap holds the platform bindings shown in the help footer while a
// game runs. Game keys go to the inputter; these are handled by the model.
type GameKeyMap struct {
	Move       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("←↑↓→/wasd", "move"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
			key.WithDisabled(),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Pause, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Pause, k.Restart},
		{k.Screenshot, k.Back, k.Help, k.Quit},
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
