// Package registry provides a global registry for demo game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/engine"
)

// Game is the interface every demo game implements.
// A game is the engine's top-level object: it may also implement
// core.Updater and render.Drawer, which the engine calls every frame.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "sandbox").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Setup is called once, right after the engine is built, to create the
	// initial entities. Entity creation is deferred, so they appear on the first tick.
	Setup(e *engine.Engine) error

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Options carries per-session settings from the command line.
type Options struct {
	ConfigPath string // Game-specific config or scene file; empty uses the search order
	Preset     string // Difficulty preset name, if the game supports one
}

// Configurable is implemented by games that read a config file.
type Configurable interface {
	Configure(opts Options) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Launch creates the game id, configures it, builds its engine and runs Setup.
func Launch(id string, opts Options, cfg core.RuntimeConfig, engineOpts ...engine.Option) (Game, *engine.Engine, error) {
	g, err := Create(id)
	if err != nil {
		return nil, nil, err
	}
	if c, ok := g.(Configurable); ok {
		if err := c.Configure(opts); err != nil {
			return nil, nil, fmt.Errorf("registry: configure %s: %w", id, err)
		}
	}
	e := engine.New(g, cfg, engineOpts...)
	if err := g.Setup(e); err != nil {
		return nil, nil, fmt.Errorf("registry: setup %s: %w", id, err)
	}
	return g, e, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
