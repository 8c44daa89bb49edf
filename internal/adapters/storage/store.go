// Package storage defines the persistence port for roster and ledger
// state, plus the file and SQLite backed implementations.
package storage

import (
	"context"
	"encoding/json"

	"github.com/okian/meeple/internal/domain/model"
)

// Persisted collection keys. Both backends store the two collections
// as independently decodable JSON values under these keys.
const (
	keyPlayers  = "players"
	keySessions = "sessions"
)

// Store provides load/save access to the persisted state.
//
// Load must tolerate missing, malformed, or wrongly shaped data by
// degrading the affected collection to empty rather than failing
// startup. Save failures are surfaced to the caller as a non-fatal
// notice; in-memory state is never rolled back on a failed write.
type Store interface {
	// Load returns the persisted players and sessions, or empty
	// collections where the stored value is absent or unreadable.
	Load(ctx context.Context) ([]model.Player, []model.GameSession, error)

	// Save persists both collections. Errors wrap ErrWriteFailed.
	Save(ctx context.Context, players []model.Player, sessions []model.GameSession) error

	// Close releases backend resources.
	Close() error
}

// decodePlayers decodes a stored players value, falling back to empty
// on any shape mismatch.
func decodePlayers(raw []byte) []model.Player {
	if len(raw) == 0 {
		return []model.Player{}
	}
	var players []model.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return []model.Player{}
	}
	return players
}

// decodeSessions decodes a stored sessions value, falling back to
// empty on any shape mismatch.
func decodeSessions(raw []byte) []model.GameSession {
	if len(raw) == 0 {
		return []model.GameSession{}
	}
	var sessions []model.GameSession
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return []model.GameSession{}
	}
	return sessions
}
