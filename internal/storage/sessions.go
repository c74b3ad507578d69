package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the record of one engine run: how long it lasted and how much
// collision activity it saw.
type Session struct {
	ID           int64
	SessionID    string // UUID; generated by SaveSession when empty
	GameID       string
	Mode         string // "tui", "ssh" or "headless"
	Ticks        int64
	Score        int
	Initial      int64
	Sustained    int64
	Uncollisions int64
	Purged       int64
	Duration     time.Duration
	CreatedAt    time.Time
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// SaveSession records a finished session and returns its session ID.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.SessionID == "" {
		sess.SessionID = NewSessionID()
	} else if _, err := uuid.Parse(sess.SessionID); err != nil {
		return "", fmt.Errorf("storage: invalid session id %q: %w", sess.SessionID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, game_id, mode, ticks, score, initial, sustained, uncollisions, purged, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.SessionID,
		sess.GameID,
		sess.Mode,
		sess.Ticks,
		sess.Score,
		sess.Initial,
		sess.Sustained,
		sess.Uncollisions,
		sess.Purged,
		sess.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.SessionID, nil
}

const sessionColumns = `id, session_id, game_id, mode, ticks, score, initial, sustained,
		        uncollisions, purged, duration_ms, created_at`

// SessionByID retrieves a session by its session ID. Returns nil if none exists.
func (s *Store) SessionByID(sessionID string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		sessionID,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
// An empty gameID matches every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var durationMS int64
	var createdAt any
	err := row.Scan(
		&sess.ID,
		&sess.SessionID,
		&sess.GameID,
		&sess.Mode,
		&sess.Ticks,
		&sess.Score,
		&sess.Initial,
		&sess.Sustained,
		&sess.Uncollisions,
		&sess.Purged,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return Session{}, err
	}
	sess.Duration = time.Duration(durationMS) * time.Millisecond
	sess.CreatedAt = parseTime(createdAt)
	return sess, nil
}
