package tui

import (
	"sort"
	"time"

	"github.com/vovakirdan/coquette/internal/input"
)

// KeyReleaser synthesizes key-up events. Terminals only report presses,
// and a held key arrives as a stream of repeats; a key is released once no
// repeat has been seen for the configured delay.
type KeyReleaser struct {
	after    time.Duration
	lastSeen map[input.Key]time.Time
}

// NewKeyReleaser creates a releaser with the given delay.
func NewKeyReleaser(after time.Duration) *KeyReleaser {
	return &KeyReleaser{
		after:    after,
		lastSeen: make(map[input.Key]time.Time),
	}
}

// Press records that k was reported at now. It returns true if k was not
// already held, meaning the caller should send a key-down.
func (r *KeyReleaser) Press(k input.Key, now time.Time) bool {
	_, held := r.lastSeen[k]
	r.lastSeen[k] = now
	return !held
}

// Expired removes and returns the keys whose last report is older than the
// delay, in ascending key order.
func (r *KeyReleaser) Expired(now time.Time) []input.Key {
	var out []input.Key
	for k, seen := range r.lastSeen {
		if now.Sub(seen) >= r.after {
			out = append(out, k)
			delete(r.lastSeen, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Held returns the number of keys currently considered down.
func (r *KeyReleaser) Held() int {
	return len(r.lastSeen)
}

// ReleaseAll forgets every held key and returns them.
func (r *KeyReleaser) ReleaseAll() []input.Key {
	out := make([]input.Key, 0, len(r.lastSeen))
	for k := range r.lastSeen {
		out = append(out, k)
	}
	clear(r.lastSeen)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
