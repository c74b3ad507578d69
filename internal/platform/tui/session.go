package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/metrics"
	"github.com/vovakirdan/coquette/internal/storage"
)

// SessionOptions configures an SSH session.
type SessionOptions struct {
	ID       string // Connection ID, used only for logging
	User     string
	Width    int
	Height   int
	Engine   config.EngineConfig
	Store    *storage.Store
	Metrics  *metrics.Metrics
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
}

// sessionLife holds the game currently running in a session so that it can
// be recorded even when the client disconnects without quitting.
type sessionLife struct {
	mu     sync.Mutex
	game   *GameModel
	logger *log.Logger
}

func (l *sessionLife) start(g GameModel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.game = &g
}

// finish records the running game, if any.
func (l *sessionLife) finish() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.game == nil {
		return
	}
	if _, err := l.game.Finish(); err != nil {
		l.logger.Warn("cannot save session", "err", err)
	}
	l.game = nil
}

// SessionModel manages the full session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts       SessionOptions
	life       *sessionLife
	menu       MenuModel
	scoreboard *ScoreboardModel
	game       *GameModel
	width      int
	height     int
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ID != "" {
		opts.Logger = opts.Logger.With("session", opts.ID, "user", opts.User)
	}
	m := SessionModel{
		opts:   opts,
		life:   &sessionLife{logger: opts.Logger},
		width:  opts.Width,
		height: opts.Height,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	cfg := m.opts.Engine.Runtime()
	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	return NewMenuModel(m.opts.Store, cfg)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.opts.Store, m.width, m.height)
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}

	return m, cmd
}

// startGame launches gameID in place of the menu.
func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	ec := m.opts.Engine
	bg, err := ec.BackgroundCell()
	if err != nil {
		m.opts.Logger.Warn("bad background, using default", "err", err)
		bg = core.Cell{Rune: ' '}
	}

	gm, err := NewGameModel(GameOptions{
		GameID:       gameID,
		Runtime:      ec.Runtime(),
		Background:   bg,
		ReleaseAfter: ec.Input.ReleaseAfter,
		Mode:         "ssh",
		Embedded:     true,
		Store:        m.opts.Store,
		Metrics:      m.opts.Metrics,
		Logger:       m.opts.Logger,
		Renderer:     m.opts.Renderer,
	})
	if err != nil {
		m.opts.Logger.Error("cannot start game", "game", gameID, "err", err)
		m.menu = m.newMenu()
		return m, nil
	}

	sized, _ := gm.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	gm = sized.(GameModel)
	m.game = &gm
	m.life.start(gm)
	return m, gm.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.life.finish()
		m.quitting = true
		return m, tea.Quit

	case m.game.Back():
		m.life.finish()
		m.game = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// Close records the running game, if any. The SSH server calls it after
// the program exits.
func (m SessionModel) Close() {
	m.life.finish()
}

// PlayingGame returns the ID of the running game, or "" in the menus.
func (m SessionModel) PlayingGame() string {
	if m.game == nil {
		return ""
	}
	return m.game.opts.GameID
}
