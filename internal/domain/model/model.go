// Package model contains domain models passed between layers.
package model

import "time"

// Player is a roster member together with its accumulated aggregates.
// The name is the unique join key between the roster and the session
// ledger; there is no separate numeric id. Field names mirror the
// persisted JSON payload.
type Player struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"` // opaque display tag, carried for consumers
	Games int    `json:"games" validate:"gte=0"`
	Wins  int    `json:"wins" validate:"gte=0"`

	PlacementSum float64 `json:"placementSum"`
	DominanceSum float64 `json:"dominanceSum"`
	GameScoreSum float64 `json:"gameScoreSum"`

	// Derived values, kept in step with the sums on every update.
	// Zero while Games is zero.
	AvgPlacement float64 `json:"avgPlacement"`
	AvgDominance float64 `json:"avgDominance"`
	AvgGameScore float64 `json:"avgGameScore"`

	// BiggestWin is absent until the player wins a session with a
	// defined winner/runner-up margin.
	BiggestWin *BiggestWin `json:"biggestWin,omitempty"`
}

// BiggestWin records the largest relative winning margin a player has
// ever achieved, and where it happened.
type BiggestWin struct {
	Percent float64   `json:"percent"`
	Game    string    `json:"game"`
	Date    time.Time `json:"date"`
}

// SessionScore is one participant's result within a session.
type SessionScore struct {
	Name      string  `json:"name" validate:"required"`
	Score     float64 `json:"score"`
	Place     int     `json:"place" validate:"gte=1"`
	Dominance float64 `json:"dominance"`
	GameScore float64 `json:"gameScore"`
}

// GameSession is one recorded game. Scores are ordered by place
// ascending, winner first. A session is immutable once appended to
// the ledger.
type GameSession struct {
	ID     string         `json:"id"`
	Game   string         `json:"game"`
	Date   time.Time      `json:"date"`
	Scores []SessionScore `json:"scores" validate:"dive"`
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	out := p
	if p.BiggestWin != nil {
		bw := *p.BiggestWin
		out.BiggestWin = &bw
	}
	return out
}

// Clone returns a deep copy of the session.
func (s GameSession) Clone() GameSession {
	out := s
	out.Scores = make([]SessionScore, len(s.Scores))
	copy(out.Scores, s.Scores)
	return out
}

// ClonePlayers deep-copies a player slice.
func ClonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}

// CloneSessions deep-copies a session slice.
func CloneSessions(sessions []GameSession) []GameSession {
	out := make([]GameSession, len(sessions))
	for i, s := range sessions {
		out[i] = s.Clone()
	}
	return out
}
