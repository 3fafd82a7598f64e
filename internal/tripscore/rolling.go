package tripscore

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// ScoredTrip is one historical trip score with its recorded timestamp.
type ScoredTrip struct {
	TripID     string
	Score      float64
	RecordedAt time.Time
}

// RollingAverage computes the mean score over trips recorded within
// windowDays of asOf. Trips outside the window are excluded entirely; an
// empty result (no trips in window) reports zero trips.
func RollingAverage(trips []ScoredTrip, asOf time.Time, windowDays int) (avg float64, count int) {
	cutoff := asOf.AddDate(0, 0, -windowDays)

	var scores []float64
	for _, t := range trips {
		if t.RecordedAt.After(cutoff) && !t.RecordedAt.After(asOf) {
			scores = append(scores, t.Score)
		}
	}
	if len(scores) == 0 {
		return 0, 0
	}
	return stat.Mean(scores, nil), len(scores)
}
