// Package backup encodes and decodes the full-state backup document
// used for file export and import.
package backup

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/okian/meeple/internal/domain/model"
)

// Document is the backup payload: the complete roster and ledger.
type Document struct {
	Players  []model.Player      `json:"players" validate:"dive"`
	Sessions []model.GameSession `json:"sessions" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Export serializes the full current state.
func Export(players []model.Player, sessions []model.GameSession) ([]byte, error) {
	doc := Document{Players: players, Sessions: sessions}
	if doc.Players == nil {
		doc.Players = []model.Player{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []model.GameSession{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Parse decodes and fully validates a backup document. Nothing is
// returned unless the whole document checks out, so a caller can
// replace its state wholesale without risking a partial overwrite.
// Absent collections normalize to empty slices.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}
	if err := validate.Struct(doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}
	if err := checkConsistency(doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}

	if doc.Players == nil {
		doc.Players = []model.Player{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []model.GameSession{}
	}
	return doc, nil
}

// checkConsistency enforces the cross-field invariants the struct tags
// cannot express.
func checkConsistency(doc Document) error {
	seen := make(map[string]struct{}, len(doc.Players))
	for _, p := range doc.Players {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Wins > p.Games {
			return fmt.Errorf("player %q has more wins than games", p.Name)
		}
	}
	return nil
}
