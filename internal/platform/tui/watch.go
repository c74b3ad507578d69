package tui

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a scene file must stay quiet before a change
// is reported. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// SceneReloader is implemented by games that can swap their scene at runtime.
type SceneReloader interface {
	ReloadScene(path string) error
}

// SceneChangedMsg reports that the watched scene file changed on disk.
type SceneChangedMsg struct {
	Path string
}

// SceneWatchErrMsg reports a watcher failure.
type SceneWatchErrMsg struct {
	Err error
}

// SceneWatcher reports debounced changes to a single scene file.
// The parent directory is watched so that editors which replace the file
// by rename are still seen.
type SceneWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	events   chan string
	errors   chan error
	closeCh  chan struct{}
	once     sync.Once
}

// NewSceneWatcher starts watching path.
func NewSceneWatcher(path string, debounce time.Duration) (*SceneWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &SceneWatcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		events:   make(chan string, 1),
		errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *SceneWatcher) Path() string {
	return w.path
}

// Events delivers the scene path each time it settles after a change.
// The channel is closed when the watcher stops.
func (w *SceneWatcher) Events() <-chan string {
	return w.events
}

// Errors delivers watcher errors.
func (w *SceneWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *SceneWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *SceneWatcher) run() {
	defer close(w.events)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.events <- w.path:
			default: // a reload is already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// waitForScene returns a command that blocks until the next scene change.
// It yields nil once the watcher is closed.
func waitForScene(w *SceneWatcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events():
			if !ok {
				return nil
			}
			return SceneChangedMsg{Path: path}
		case err := <-w.Errors():
			return SceneWatchErrMsg{Err: err}
		}
	}
}
