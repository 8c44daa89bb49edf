// Package trend derives per-player running-average series from the
// session ledger, for charting.
package trend

import (
	"github.com/okian/meeple/internal/domain/model"
)

// Metric selects which per-session value feeds the running average.
type Metric string

// Chartable metrics.
const (
	// MetricPlacement charts the RAW SCORE, not the finishing rank.
	// The original feature shipped with this aliasing and consumers
	// depend on it; see DESIGN.md before "fixing" it.
	MetricPlacement Metric = "placement"
	MetricDominance Metric = "dominance"
	MetricGameScore Metric = "gameScore"
)

// Point is one sample of a player's series: the ledger index of the
// session and the running average up to and including it.
type Point struct {
	Session int
	Average float64
}

// Valid reports whether m names a chartable metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricPlacement, MetricDominance, MetricGameScore:
		return true
	}
	return false
}

// Series walks the ledger once, in recorded order, and emits for each
// player one point per session they took part in. Players absent from
// a session get no point for that index; the series are sparse, never
// zero-filled. Unknown metrics yield an empty map.
func Series(metric Metric, sessions []model.GameSession) map[string][]Point {
	out := make(map[string][]Point)
	if !metric.Valid() {
		return out
	}

	type acc struct {
		sum   float64
		count int
	}
	running := make(map[string]*acc)

	for idx, session := range sessions {
		for _, score := range session.Scores {
			a := running[score.Name]
			if a == nil {
				a = &acc{}
				running[score.Name] = a
			}
			a.sum += metricValue(metric, score)
			a.count++
			out[score.Name] = append(out[score.Name], Point{
				Session: idx,
				Average: a.sum / float64(a.count),
			})
		}
	}
	return out
}

func metricValue(metric Metric, s model.SessionScore) float64 {
	switch metric {
	case MetricDominance:
		return s.Dominance
	case MetricGameScore:
		return s.GameScore
	default:
		// placement: raw score by contract
		return s.Score
	}
}
