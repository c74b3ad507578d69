package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := Session{
		GameID:       "sandbox",
		Mode:         "headless",
		Ticks:        600,
		Score:        12,
		Initial:      40,
		Sustained:    310,
		Uncollisions: 18,
		Purged:       3,
		Duration:     10*time.Second + 250*time.Millisecond,
	}
	id, err := store.SaveSession(in)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated session id %q is not a UUID: %v", id, err)
	}

	got, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("SessionByID() returned nil for saved session")
	}
	in.ID, in.SessionID, in.CreatedAt = got.ID, id, got.CreatedAt
	if *got != in {
		t.Errorf("session = %+v, want %+v", *got, in)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}

func TestSaveSessionRejectsBadID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSession(Session{SessionID: "not-a-uuid", GameID: "x", Mode: "tui"}); err == nil {
		t.Error("SaveSession() accepted a malformed session id")
	}

	id := NewSessionID()
	if _, err := store.SaveSession(Session{SessionID: id, GameID: "x", Mode: "tui"}); err != nil {
		t.Fatalf("SaveSession() with explicit id failed: %v", err)
	}
	if _, err := store.SaveSession(Session{SessionID: id, GameID: "x", Mode: "tui"}); err == nil {
		t.Error("SaveSession() accepted a duplicate session id")
	}
}

func TestSessionByIDMissing(t *testing.T) {
	store := openTestStore(t)
	got, err := store.SessionByID(uuid.NewString())
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("SessionByID() = %+v, want nil", got)
	}
}

func TestRecentSessions(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 3; i++ {
		if _, err := store.SaveSession(Session{GameID: "sandbox", Mode: "tui", Ticks: int64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveSession(Session{GameID: "collector", Mode: "ssh", Ticks: 99}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		gameID string
		limit  int
		want   int
	}{
		{"all games", "", 10, 4},
		{"one game", "sandbox", 10, 3},
		{"limited", "sandbox", 2, 2},
		{"unknown game", "pong", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.RecentSessions(tt.gameID, tt.limit)
			if err != nil {
				t.Fatalf("RecentSessions() failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("RecentSessions(%q, %d) returned %d sessions, want %d", tt.gameID, tt.limit, len(got), tt.want)
			}
		})
	}

	// Newest first: same-second rows fall back to insertion order.
	got, _ := store.RecentSessions("sandbox", 10)
	if got[0].Ticks != 2 {
		t.Errorf("newest sandbox session has %d ticks, want 2", got[0].Ticks)
	}
}

func TestGetGameStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("collector", 30)
	store.SaveScore("collector", 50)
	store.SaveSession(Session{GameID: "collector", Mode: "tui", Ticks: 100, Initial: 7})
	store.SaveSession(Session{GameID: "collector", Mode: "tui", Ticks: 50, Initial: 3})

	stats, err := store.GetGameStats("collector")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 50 || stats.AvgScore != 40 || stats.TotalScore != 80 {
		t.Errorf("score stats = %+v", stats)
	}
	if stats.Sessions != 2 || stats.TotalTicks != 150 || stats.TotalContacts != 10 {
		t.Errorf("session stats = %+v", stats)
	}

	empty, err := store.GetGameStats("sandbox")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.Sessions != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}
