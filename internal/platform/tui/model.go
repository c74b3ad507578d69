package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/engine"
	"github.com/vovakirdan/coquette/internal/metrics"
	"github.com/vovakirdan/coquette/internal/registry"
	"github.com/vovakirdan/coquette/internal/storage"
)

// GameOptions configures one interactive game session.
type GameOptions struct {
	GameID       string
	Game         registry.Options
	Runtime      core.RuntimeConfig
	Background   core.Cell
	ReleaseAfter time.Duration
	Mode         string // Recorded with the session: "tui" or "ssh"
	Watch        bool   // Reload the scene file when it changes on disk
	Embedded     bool   // Esc hands control back to the caller instead of reaching the game

	Store         *storage.Store     // Optional; scores and sessions are not saved without it
	Metrics       *metrics.Metrics   // Optional
	Logger        *log.Logger        // Optional; discards when nil
	Renderer      *lipgloss.Renderer // Optional; SSH sessions pass the client's renderer
	ScreenshotDir string             // Defaults to ~/.coquette/screenshots
}

// sessionState is shared between copies of the model.
type sessionState struct {
	totals     engine.Totals
	started    time.Time
	scoreSaved bool
	finished   bool
	saved      storage.Session
	err        error
}

// GameModel is the Bubble Tea model that runs one game on the engine.
type GameModel struct {
	opts    GameOptions
	game    registry.Game
	eng     *engine.Engine
	logger  *log.Logger
	state   *sessionState
	ticker  *engine.Ticker
	keys    *KeyMapper
	release *KeyReleaser
	keymap  GameKeyMap
	help    help.Model
	palette Palette
	watcher *SceneWatcher
	now     func() time.Time

	width    int
	height   int
	quitting bool
	back     bool
}

// NewGameModel launches the game and builds a model around its engine.
func NewGameModel(opts GameOptions) (GameModel, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Mode == "" {
		opts.Mode = "tui"
	}
	logger = logger.With("game", opts.GameID)

	state := &sessionState{}
	observers := engine.Observers{&state.totals}
	if opts.Metrics != nil {
		observers = append(observers, opts.Metrics.Observer(opts.GameID))
	}

	game, eng, err := registry.Launch(opts.GameID, opts.Game, opts.Runtime,
		engine.WithLogger(logger),
		engine.WithBackground(opts.Background),
		engine.WithObserver(observers),
	)
	if err != nil {
		return GameModel{}, err
	}

	keymap := DefaultGameKeyMap()
	keymap.Back.SetEnabled(opts.Embedded)

	m := GameModel{
		opts:    opts,
		game:    game,
		eng:     eng,
		logger:  logger,
		state:   state,
		ticker:  engine.NewTicker(),
		keys:    NewKeyMapper(),
		release: NewKeyReleaser(opts.ReleaseAfter),
		keymap:  keymap,
		help:    help.New(),
		palette: NewPalette(opts.Renderer),
		now:     time.Now,
	}

	if opts.Watch {
		path := scenePath(game, opts.Game.ConfigPath)
		if path == "" {
			return GameModel{}, fmt.Errorf("tui: %s has no scene file to watch", opts.GameID)
		}
		w, err := NewSceneWatcher(path, DefaultDebounce)
		if err != nil {
			return GameModel{}, err
		}
		m.watcher = w
		logger.Info("watching scene", "path", w.Path())
	}

	state.started = m.now()
	if opts.Metrics != nil {
		opts.Metrics.SessionStarted()
	}
	logger.Info("session started", "mode", opts.Mode, "seed", eng.Config().Seed)
	return m, nil
}

func scenePath(game registry.Game, fallback string) string {
	if s, ok := game.(interface{ ScenePath() string }); ok && s.ScenePath() != "" {
		return s.ScenePath()
	}
	return fallback
}

// Init starts the frame loop and, when enabled, the scene watcher.
func (m GameModel) Init() tea.Cmd {
	m.ticker.Start()
	cmds := []tea.Cmd{tickCmd(m.eng.Config().TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForScene(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case SceneChangedMsg:
		m.reloadScene(msg.Path)
		return m, waitForScene(m.watcher)

	case SceneWatchErrMsg:
		m.logger.Warn("scene watcher error", "err", msg.Err)
		return m, waitForScene(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back):
		m.back = true
		return m, nil
	case key.Matches(msg, m.keymap.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	if k, ok := m.keys.MapKey(msg); ok {
		if m.release.Press(k, m.now()) {
			m.eng.Input().KeyDown(k)
		}
	}
	return m, nil
}

// handleTick releases stale keys and runs one engine frame.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.back {
		return m, nil
	}
	for _, k := range m.release.Expired(now) {
		m.eng.Input().KeyUp(k)
	}

	interval, _ := m.ticker.Next()
	if err := m.eng.Tick(interval); err != nil {
		m.logger.Error("engine stopped", "err", err)
		m.state.err = err
		m.quitting = true
		return m, tea.Quit
	}

	gs := m.game.State()
	switch {
	case gs.GameOver && !m.state.scoreSaved:
		m.saveScore(gs.Score)
		m.state.scoreSaved = true
	case !gs.GameOver:
		m.state.scoreSaved = false
	}

	return m, tickCmd(m.eng.Config().TickRate)
}

func (m GameModel) saveScore(score int) {
	if m.opts.Store == nil || score <= 0 {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.opts.GameID, score); err != nil {
		m.logger.Warn("cannot save score", "err", err)
		return
	}
	m.logger.Info("score saved", "score", score)
}

func (m GameModel) reloadScene(path string) {
	r, ok := m.game.(SceneReloader)
	if !ok {
		return
	}
	if err := r.ReloadScene(path); err != nil {
		m.logger.Warn("scene reload failed", "path", path, "err", err)
		return
	}
	m.logger.Info("scene reloaded", "path", path)
}

// layout fits the engine view into the window above the help footer.
func (m *GameModel) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = m.width
	footer := lipgloss.Height(m.help.View(m.keymap))
	h := max(m.height-footer, 1)
	m.eng.Renderer().Resize(m.width, h)
}

// saveScreenshot writes the current frame as plain text.
func (m GameModel) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = config.DataPath("screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.opts.GameID, timestamp))
	if err := os.WriteFile(path, []byte(m.eng.Screen().String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the last frame and the help footer.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return m.palette.Render(m.eng.Screen()) + "\n" + m.help.View(m.keymap)
}

// Game returns the running game.
func (m GameModel) Game() registry.Game { return m.game }

// Engine returns the engine driving the game.
func (m GameModel) Engine() *engine.Engine { return m.eng }

// IsQuitting reports whether the player asked to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// Back reports whether the player asked to leave the game.
func (m GameModel) Back() bool { return m.back }

// Err returns the engine error that stopped the session, if any.
func (m GameModel) Err() error { return m.state.err }

// Finish stops the scene watcher and records the session. It is safe to
// call more than once; later calls return the first result.
func (m GameModel) Finish() (storage.Session, error) {
	st := m.state
	if st.finished {
		return st.saved, nil
	}
	st.finished = true

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.logger.Warn("cannot close scene watcher", "err", err)
		}
	}
	if m.opts.Metrics != nil {
		m.opts.Metrics.SessionEnded()
	}

	st.saved = storage.Session{
		GameID:       m.opts.GameID,
		Mode:         m.opts.Mode,
		Ticks:        int64(st.totals.Ticks),
		Score:        m.game.State().Score,
		Initial:      int64(st.totals.Stats.Initial),
		Sustained:    int64(st.totals.Stats.Sustained),
		Uncollisions: int64(st.totals.Stats.Uncollisions),
		Purged:       int64(st.totals.Stats.Purged),
		Duration:     m.now().Sub(st.started),
	}
	m.logger.Info("session finished",
		"ticks", st.totals.Ticks,
		"collisions", st.totals.Stats.Initial,
		"uncollisions", st.totals.Stats.Uncollisions,
		"duration", st.saved.Duration.Round(time.Millisecond),
	)

	if m.opts.Store == nil || st.totals.Ticks == 0 {
		return st.saved, nil
	}
	id, err := m.opts.Store.SaveSession(st.saved)
	if err != nil {
		return st.saved, err
	}
	st.saved.SessionID = id
	return st.saved, nil
}

// Run plays one game in the terminal until the player quits.
func Run(opts GameOptions) error {
	model, err := NewGameModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, runErr := p.Run()

	if fm, ok := final.(GameModel); ok {
		model = fm
	}
	_, finishErr := model.Finish()
	return errors.Join(runErr, model.Err(), finishErr)
}
