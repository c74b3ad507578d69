// Package input tracks keyboard state for polling by games.
//
// The platform layer feeds raw key events through KeyDown and KeyUp; games
// poll Down for held keys and Pressed for keys whose press began this tick.
// The engine calls Update at the end of every tick.
package input

// pressState tracks a single key press from its first tick to its release.
type pressState int

const (
	pressFresh pressState = iota + 1 // Press began since the last Update
	pressHeld                        // Press is older than one tick
)

// Inputter holds the current key state.
type Inputter struct {
	down    map[Key]bool
	pressed map[Key]pressState
}

// New creates an Inputter with no keys held.
func New() *Inputter {
	return &Inputter{
		down:    make(map[Key]bool),
		pressed: make(map[Key]pressState),
	}
}

// KeyDown records a key-down event. Repeated events for a held key do not
// start a new press.
func (in *Inputter) KeyDown(k Key) {
	in.down[k] = true
	if _, ok := in.pressed[k]; !ok {
		in.pressed[k] = pressFresh
	}
}

// KeyUp records a key-up event. A press released within its first tick stays
// visible to Pressed until the next Update.
func (in *Inputter) KeyUp(k Key) {
	in.down[k] = false
	if in.pressed[k] == pressHeld {
		delete(in.pressed, k)
	}
}

// Update ends the current tick: fresh presses become held, and presses whose
// key was already released are cleared so the next key-down counts again.
func (in *Inputter) Update() {
	for k, st := range in.pressed {
		if st != pressFresh {
			continue
		}
		if in.down[k] {
			in.pressed[k] = pressHeld
		} else {
			delete(in.pressed, k)
		}
	}
}

// Down reports whether k is currently held.
func (in *Inputter) Down(k Key) bool {
	return in.down[k]
}

// State is an alias for Down.
func (in *Inputter) State(k Key) bool {
	return in.Down(k)
}

// Pressed reports whether a press of k began during the current tick.
func (in *Inputter) Pressed(k Key) bool {
	return in.pressed[k] == pressFresh
}

// HeldKeys returns the keys currently held, in no particular order.
func (in *Inputter) HeldKeys() []Key {
	keys := make([]Key, 0, len(in.down))
	for k, d := range in.down {
		if d {
			keys = append(keys, k)
		}
	}
	return keys
}

// Reset releases every key.
func (in *Inputter) Reset() {
	clear(in.down)
	clear(in.pressed)
}
