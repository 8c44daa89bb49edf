// Package roster holds the set of known players and their cumulative
// aggregates, keyed by exact player name.
package roster

import (
	"sort"
	"strings"

	"github.com/okian/meeple/internal/domain/model"
)

// Sortable roster fields.
const (
	FieldName         = "name"
	FieldGames        = "games"
	FieldWins         = "wins"
	FieldAvgPlacement = "avgPlacement"
	FieldAvgDominance = "avgDominance"
	FieldAvgGameScore = "avgGameScore"
	FieldBiggestWin   = "biggestWin"
)

// Roster owns the player list. It is not safe for concurrent use; the
// app layer serializes access.
type Roster struct {
	players []model.Player
}

// New builds a roster over the given players. The slice is owned by
// the roster afterwards.
func New(players []model.Player) *Roster {
	return &Roster{players: players}
}

// Add registers a new player with zeroed aggregates. The name must not
// collide with an existing player; names are the join key into the
// session ledger, so duplicates would corrupt every later lookup.
func (r *Roster) Add(name, color string) error {
	if r.Find(name) != nil {
		return ErrDuplicateName
	}
	r.players = append(r.players, model.Player{Name: name, Color: color})
	return nil
}

// Remove deletes a player. Ledger entries referencing the name stay
// untouched; history outlives roster membership.
func (r *Roster) Remove(name string) error {
	for i, p := range r.players {
		if p.Name == name {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return nil
		}
	}
	return ErrUnknownPlayer
}

// Find returns a pointer into the roster for in-place aggregate
// updates, or nil when the name is unknown.
func (r *Roster) Find(name string) *model.Player {
	for i := range r.players {
		if r.players[i].Name == name {
			return &r.players[i]
		}
	}
	return nil
}

// Sort orders the roster by the named field, stably. Name sorts
// lexicographically; every other field sorts numerically with absent
// values treated as 0 (a zero-games player has zero averages, a player
// who never won has biggest win 0).
func (r *Roster) Sort(field string, ascending bool) {
	less := func(a, b model.Player) bool {
		if field == FieldName {
			return strings.Compare(a.Name, b.Name) < 0
		}
		return numericField(a, field) < numericField(b, field)
	}
	sort.SliceStable(r.players, func(i, j int) bool {
		if ascending {
			return less(r.players[i], r.players[j])
		}
		return less(r.players[j], r.players[i])
	})
}

// Players returns a deep copy for external consumers.
func (r *Roster) Players() []model.Player {
	return model.ClonePlayers(r.players)
}

// Len returns the number of players.
func (r *Roster) Len() int {
	return len(r.players)
}

// Replace swaps the whole player list, used by backup import.
func (r *Roster) Replace(players []model.Player) {
	r.players = players
}

func numericField(p model.Player, field string) float64 {
	switch field {
	case FieldGames:
		return float64(p.Games)
	case FieldWins:
		return float64(p.Wins)
	case FieldAvgPlacement:
		return p.AvgPlacement
	case FieldAvgDominance:
		return p.AvgDominance
	case FieldAvgGameScore:
		return p.AvgGameScore
	case FieldBiggestWin:
		if p.BiggestWin == nil {
			return 0
		}
		return p.BiggestWin.Percent
	default:
		return 0
	}
}
