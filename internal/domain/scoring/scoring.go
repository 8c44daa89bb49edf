// Package scoring turns the raw scores of one game session into a
// ranking with per-participant derived metrics.
package scoring

import (
	"sort"
	"strconv"
	"strings"
)

// Default scoring constants.
const (
	// maxGameScore is the rank-normalized score of first place.
	maxGameScore = 100
	// minParticipants is the number of scored entries a session must
	// keep after filtering to be rankable.
	minParticipants = 2
)

// Entry is one submitted line of a session form: a player name, the raw
// score as entered, and whether the player actually played. Entries
// with Participated false or a score that does not parse as a number
// are dropped before ranking.
type Entry struct {
	Name         string
	RawScore     string
	Participated bool
}

// Ranked is one participant's computed result.
type Ranked struct {
	Name      string
	Score     float64
	Place     int // 1-based, winner first
	Dominance float64
	GameScore float64
}

// scored is an Entry that survived filtering, with its parsed value.
type scored struct {
	name  string
	score float64
}

// Score ranks the participating entries of a session.
//
// Entries are sorted by raw score descending with a stable sort, so
// ties keep their original input order; that tie-break is part of the
// contract, not an accident. Place is the 1-based position in that
// order. Dominance normalizes each score into [0,1] over the session's
// score range; when every score is equal the range is floored to 1,
// which yields dominance 0 for all participants. GameScore maps rank
// onto a 0-100 scale in even steps of 100/(n-1), so first place is
// always exactly 100 and last place exactly 0.
//
// Returns ErrInsufficientParticipants when fewer than two entries
// survive filtering; a session needs at least two comparable scores.
func Score(entries []Entry) ([]Ranked, error) {
	valid := make([]scored, 0, len(entries))
	for _, e := range entries {
		if !e.Participated {
			continue
		}
		raw := strings.TrimSpace(e.RawScore)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		valid = append(valid, scored{name: e.Name, score: v})
	}

	if len(valid) < minParticipants {
		return nil, ErrInsufficientParticipants
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].score > valid[j].score
	})

	n := len(valid)
	maxScore := valid[0].score
	minScore := valid[n-1].score
	span := maxScore - minScore
	if span == 0 {
		span = 1
	}
	step := 0.0
	if n > 1 {
		step = maxGameScore / float64(n-1)
	}

	ranking := make([]Ranked, n)
	for i, s := range valid {
		ranking[i] = Ranked{
			Name:      s.name,
			Score:     s.score,
			Place:     i + 1,
			Dominance: (s.score - minScore) / span,
			GameScore: maxGameScore - float64(i)*step,
		}
	}
	return ranking, nil
}
