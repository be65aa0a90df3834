// Package history provides a SQLite-backed log of narrated
// notifications and detected tab messages. The playback queue itself is
// never persisted; this is an after-the-fact record for review.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sergiopachon/birdie/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS narrations (
	id          TEXT PRIMARY KEY,
	app_name    TEXT NOT NULL,
	sender      TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL,
	narrated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS detections (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	tab_id      TEXT NOT NULL,
	tab_title   TEXT NOT NULL DEFAULT '',
	domain      TEXT NOT NULL DEFAULT '',
	sender      TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	detected_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_narrations_at ON narrations(narrated_at);
CREATE INDEX IF NOT EXISTS idx_detections_at ON detections(detected_at);
`

// NarrationEntry is one row of the narration log.
type NarrationEntry struct {
	ID         string
	AppName    string
	Sender     string
	Message    string
	NarratedAt string
}

// Store is the SQLite-backed history log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at the provided path.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("history store: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("history store: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history store: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history store: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DefaultPath returns the standard history database location.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "birdie", "history.db"), nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordNarration logs a narrated notification.
func (s *Store) RecordNarration(n *domain.Notification) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO narrations (id, app_name, sender, message, narrated_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.AppName, n.Sender, n.Message, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("history store: record narration: %w", err)
	}
	return nil
}

// RecordDetection logs a detected tab message.
func (s *Store) RecordDetection(msg domain.DetectedMessage) error {
	_, err := s.db.Exec(
		`INSERT INTO detections (tab_id, tab_title, domain, sender, message, source, detected_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.TabID, msg.TabTitle, msg.Domain, msg.Sender, msg.Message, msg.Source, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("history store: record detection: %w", err)
	}
	return nil
}

// RecentNarrations returns the most recent narrations, newest first.
func (s *Store) RecentNarrations(limit int) ([]NarrationEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, app_name, sender, message, narrated_at FROM narrations ORDER BY narrated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history store: list narrations: %w", err)
	}
	defer rows.Close()

	var out []NarrationEntry
	for rows.Next() {
		var e NarrationEntry
		if err := rows.Scan(&e.ID, &e.AppName, &e.Sender, &e.Message, &e.NarratedAt); err != nil {
			return nil, fmt.Errorf("history store: scan narration: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentDetections returns the most recent detections, newest first.
func (s *Store) RecentDetections(limit int) ([]domain.DetectedMessage, error) {
	rows, err := s.db.Query(
		`SELECT tab_id, tab_title, domain, sender, message, source, detected_at FROM detections ORDER BY detected_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history store: list detections: %w", err)
	}
	defer rows.Close()

	var out []domain.DetectedMessage
	for rows.Next() {
		var m domain.DetectedMessage
		if err := rows.Scan(&m.TabID, &m.TabTitle, &m.Domain, &m.Sender, &m.Message, &m.Source, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("history store: scan detection: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Cleanup removes entries older than the given number of days.
func (s *Store) Cleanup(daysThreshold int) error {
	if daysThreshold < 0 {
		return fmt.Errorf("history store: days threshold must be >= 0")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysThreshold).Format(time.RFC3339)
	if _, err := s.db.Exec(`DELETE FROM narrations WHERE narrated_at < ?`, cutoff); err != nil {
		return fmt.Errorf("history store: cleanup narrations: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM detections WHERE detected_at < ?`, cutoff); err != nil {
		return fmt.Errorf("history store: cleanup detections: %w", err)
	}
	return nil
}
