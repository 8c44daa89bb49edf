// Package aggregate folds one scored session into the roster's running
// statistics and materializes the immutable ledger entry for it.
package aggregate

import (
	"time"

	"github.com/okian/meeple/internal/domain/model"
	"github.com/okian/meeple/internal/domain/roster"
	"github.com/okian/meeple/internal/domain/scoring"
)

// minRankedForMargin is the number of ranked entries needed before a
// winner/runner-up margin exists.
const minRankedForMargin = 2

// Apply advances every ranked participant's aggregates on the roster
// and returns the GameSession to append to the ledger. Sums, counts
// and the derived averages move together; wins advances only for
// place 1. Ranked names without a roster entry still land in the
// session scores but mutate nothing, so the ledger keeps the full
// result even after a player is removed.
//
// Apply cannot fail: all input validation happens in scoring, which
// lets the caller commit roster mutation and ledger append as one
// step.
func Apply(r *roster.Roster, ranking []scoring.Ranked, game string, ts time.Time, id string) model.GameSession {
	session := model.GameSession{
		ID:     id,
		Game:   game,
		Date:   ts,
		Scores: make([]model.SessionScore, len(ranking)),
	}

	for i, entry := range ranking {
		session.Scores[i] = model.SessionScore{
			Name:      entry.Name,
			Score:     entry.Score,
			Place:     entry.Place,
			Dominance: entry.Dominance,
			GameScore: entry.GameScore,
		}

		p := r.Find(entry.Name)
		if p == nil {
			continue
		}
		p.Games++
		p.PlacementSum += float64(entry.Place)
		p.AvgPlacement = p.PlacementSum / float64(p.Games)
		p.DominanceSum += entry.Dominance
		p.AvgDominance = p.DominanceSum / float64(p.Games)
		p.GameScoreSum += entry.GameScore
		p.AvgGameScore = p.GameScoreSum / float64(p.Games)
		if entry.Place == 1 {
			p.Wins++
		}
	}

	updateBiggestWin(r, ranking, game, ts)
	return session
}

// updateBiggestWin replaces the winner's stored record when this
// session's winner/runner-up margin beats it. A runner-up score of
// zero makes the relative margin undefined; the update is skipped
// outright in that case rather than producing Inf or NaN.
func updateBiggestWin(r *roster.Roster, ranking []scoring.Ranked, game string, ts time.Time) {
	if len(ranking) < minRankedForMargin {
		return
	}
	winner := ranking[0]
	runnerUp := ranking[1]
	if runnerUp.Score == 0 {
		return
	}

	p := r.Find(winner.Name)
	if p == nil {
		return
	}
	relWin := (winner.Score - runnerUp.Score) / runnerUp.Score
	if p.BiggestWin == nil || relWin > p.BiggestWin.Percent {
		p.BiggestWin = &model.BiggestWin{Percent: relWin, Game: game, Date: ts}
	}
}
