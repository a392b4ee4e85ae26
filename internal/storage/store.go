// Package storage is the single point of truth for durable state: the
// deck snapshot, the settings record and the session counter, all in one
// local sqlite database. Reads recover from missing or corrupt records
// by substituting fresh defaults; only writes surface errors, and the
// in-memory deck stays authoritative when a write fails.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/conorfennell/studydeck/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// Store wraps the sqlite connection holding all durable records.
type Store struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{conn: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func deckKey(profile string) string     { return "deck:" + profile }
func settingsKey(profile string) string { return "settings:" + profile }
func sessionsKey(profile string) string { return "sessions:" + profile }

// LoadDeck reads the deck snapshot for the profile. A missing or
// unreadable snapshot yields a fresh empty deck rather than an error;
// on success every card is hydrated and the topic index rebuilt.
func (s *Store) LoadDeck(profile string) *domain.Deck {
	body, found := s.readDocument(deckKey(profile))
	if !found {
		return domain.NewDeck(time.Now())
	}

	var deck domain.Deck
	if err := json.Unmarshal([]byte(body), &deck); err != nil {
		slog.Warn("Deck snapshot is corrupt, starting fresh", "profile", profile, "error", err)
		return domain.NewDeck(time.Now())
	}

	for i := range deck.Cards {
		deck.Cards[i] = domain.Hydrate(deck.Cards[i])
	}
	deck.RebuildTopicIndex()
	return &deck
}

// SaveDeck stamps UpdatedAt and writes the whole snapshot. On failure
// the caller keeps working against the in-memory deck; the change just
// may not survive a restart.
func (s *Store) SaveDeck(profile string, deck *domain.Deck) error {
	deck.UpdatedAt = time.Now().UnixMilli()
	body, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to encode deck snapshot: %w", err)
	}
	return s.writeDocument(deckKey(profile), string(body))
}

// ReplaceDeck swaps in an entirely new deck, rebuilding its topic index
// and persisting it. Used by replace-on-import and clear-all flows.
func (s *Store) ReplaceDeck(profile string, deck *domain.Deck) error {
	deck.RebuildTopicIndex()
	return s.SaveDeck(profile, deck)
}

// LoadSettings reads the settings record for the profile, falling back
// to def when the record is missing or unreadable.
func (s *Store) LoadSettings(profile string, def domain.Settings) domain.Settings {
	body, found := s.readDocument(settingsKey(profile))
	if !found {
		return def
	}
	var settings domain.Settings
	if err := json.Unmarshal([]byte(body), &settings); err != nil {
		slog.Warn("Settings record is corrupt, using defaults", "profile", profile, "error", err)
		return def
	}
	return settings
}

// SaveSettings writes the settings record for the profile.
func (s *Store) SaveSettings(profile string, settings domain.Settings) error {
	body, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.writeDocument(settingsKey(profile), string(body))
}

// NextSessionNumber increments and returns the per-profile session
// counter. It is called once per session start.
func (s *Store) NextSessionNumber(profile string) (int64, error) {
	var value int64
	err := s.conn.QueryRow(`
		INSERT INTO counters (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1
		RETURNING value
	`, sessionsKey(profile)).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to advance session counter: %w", err)
	}
	return value, nil
}

func (s *Store) readDocument(key string) (string, bool) {
	var body string
	err := s.conn.QueryRow(`
		SELECT body FROM documents WHERE key = ?
	`, key).Scan(&body)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Warn("Failed to read document", "key", key, "error", err)
		}
		return "", false
	}
	return body, true
}

func (s *Store) writeDocument(key, body string) error {
	_, err := s.conn.Exec(`
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, key, body, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}
	return nil
}
