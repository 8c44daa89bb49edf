package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // cgo-free sqlite driver

	"github.com/okian/meeple/internal/domain/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore persists state as JSON values in a two-column key/value
// table. Same contract as FileStore, different durability story.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads both collections. A missing row or an undecodable value
// degrades that collection to empty.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Player, []model.GameSession, error) {
	rawPlayers, err := s.get(ctx, keyPlayers)
	if err != nil {
		return []model.Player{}, []model.GameSession{}, fmt.Errorf("load players: %w", err)
	}
	rawSessions, err := s.get(ctx, keySessions)
	if err != nil {
		return []model.Player{}, []model.GameSession{}, fmt.Errorf("load sessions: %w", err)
	}
	return decodePlayers(rawPlayers), decodeSessions(rawSessions), nil
}

// Save upserts both collections in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, players []model.Player, sessions []model.GameSession) error {
	playersJSON, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	sessionsJSON, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsert = `INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, keyPlayers, string(playersJSON)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keySessions, string(sessionsJSON)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}
