package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/meeple/internal/domain/model"
)

// Default file store configuration constants.
const (
	defaultFileMode fs.FileMode = 0o600
)

// FileOption applies a configuration option to the FileStore.
type FileOption func(*FileStore)

// WithFileMode sets the permission bits used for the state file.
func WithFileMode(mode fs.FileMode) FileOption {
	return func(s *FileStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// fileDocument is the on-disk envelope: one JSON object holding both
// collections as raw values, each decoded independently so a corrupt
// collection degrades alone.
type fileDocument struct {
	Players  json.RawMessage `json:"players"`
	Sessions json.RawMessage `json:"sessions"`
}

// FileStore persists state as a single JSON document on disk.
type FileStore struct {
	path string
	mode fs.FileMode
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path: path,
		mode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the state file. A missing file, unreadable JSON, or a
// wrongly shaped collection all degrade to empty collections; only the
// happy path yields stored data. Load never fails startup over
// corrupt content.
func (s *FileStore) Load(_ context.Context) ([]model.Player, []model.GameSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Player{}, []model.GameSession{}, nil
		}
		return []model.Player{}, []model.GameSession{}, fmt.Errorf("read state file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return []model.Player{}, []model.GameSession{}, nil
	}
	return decodePlayers(doc.Players), decodeSessions(doc.Sessions), nil
}

// Save writes both collections as one document, via a temp file and
// rename so a failed write never truncates the previous state.
func (s *FileStore) Save(_ context.Context, players []model.Player, sessions []model.GameSession) error {
	doc := map[string]any{
		keyPlayers:  players,
		keySessions: sessions,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := os.WriteFile(tmp, data, s.mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
