package stopgo

import (
	"math"
	"time"
)

// mergeDecision is the outcome of the per-stop outlier check (spec.md §4.13).
type mergeDecision int

const (
	decisionKeep mergeDecision = iota
	decisionDelete
	decisionMerge
)

// stopAttr carries a stop interval plus the distance/time context to its
// neighbours that the filter needs to score it.
type stopAttr struct {
	interval           StopInterval
	distNext, distPrev OptFloat
	timeNext, timePrev OptFloat
	durationScore      float64
	independenceScore  float64
	decision           mergeDecision
	direction          int // +1 merge into next, -1 merge into prev, 0 none
}

// filterOutliers removes or merges stop intervals that look like GPS noise
// rather than a real stop: too short on its own (delete), or too close in
// time and distance to a neighbouring stop to be independent (merge into
// that neighbour). Filtering re-runs itself until a pass leaves the count
// unchanged, since merging can create a new stop that itself needs
// re-evaluating against its new neighbours.
func filterOutliers(tr *trace, stops []StopInterval, cfg Config) []StopInterval {
	if len(stops) == 0 {
		return stops
	}
	initialCount := len(stops)

	n := len(stops)
	rows := make([]stopAttr, n)
	for i, s := range stops {
		rows[i].interval = s
	}

	for i := 0; i < n; i++ {
		if i+1 < n {
			rows[i].distNext = Some(euclid(rows[i].interval.CentroidX, rows[i].interval.CentroidY, rows[i+1].interval.CentroidX, rows[i+1].interval.CentroidY))
			if pl, ok := pathLengthBetween(tr, rows[i].interval.Stop, rows[i+1].interval.Start); ok && pl > rows[i].distNext.V {
				rows[i].distNext = Some(pl)
			}
			rows[i].timeNext = Some(rows[i+1].interval.Start.Sub(rows[i].interval.Stop).Seconds())
		}
		if i > 0 {
			rows[i].distPrev = rows[i-1].distNext
			rows[i].timePrev = rows[i-1].timeNext
		}
	}

	for i := range rows {
		rows[i].durationScore = stopDurationScore(rows[i].interval.DurationSeconds, cfg)
		rows[i].independenceScore = independenceScore(rows[i], n, cfg)
	}
	for i := range rows {
		switch {
		case rows[i].durationScore == -1.0 && rows[i].independenceScore >= 0.0:
			rows[i].decision = decisionDelete
		case rows[i].independenceScore < 0.0:
			rows[i].decision = decisionMerge
		default:
			rows[i].decision = decisionKeep
		}
	}
	for i := range rows {
		if rows[i].decision != decisionMerge {
			continue
		}
		rows[i].direction = mergeDirection(rows, i, n, cfg)
	}

	kept := make([]stopAttr, 0, n)
	for _, r := range rows {
		if r.decision == decisionDelete {
			continue
		}
		if r.decision == decisionMerge && r.direction == 0 {
			continue
		}
		kept = append(kept, r)
	}

	var result []StopInterval
	switch {
	case len(kept) == 0:
		result = nil
	case len(kept) == 1 && kept[0].decision == decisionDelete:
		result = nil
	case len(kept) == 1:
		result = []StopInterval{buildInterval(tr, kept[0].interval.Start, kept[0].interval.Stop)}
	default:
		merged := make([]bool, len(kept))
		starts := make([]time.Time, len(kept))
		stopsAt := make([]time.Time, len(kept))
		for i, r := range kept {
			starts[i] = r.interval.Start
			stopsAt[i] = r.interval.Stop
		}
		for i, r := range kept {
			if r.decision != decisionMerge {
				continue
			}
			neighbour := i + r.direction
			if neighbour < 0 || neighbour >= len(kept) || merged[neighbour] {
				continue
			}
			if starts[i].Before(starts[neighbour]) {
				starts[neighbour] = starts[i]
			}
			if stopsAt[i].After(stopsAt[neighbour]) {
				stopsAt[neighbour] = stopsAt[i]
			}
			merged[i] = true
		}
		for i := range kept {
			if merged[i] {
				continue
			}
			result = append(result, buildInterval(tr, starts[i], stopsAt[i]))
		}
	}

	if len(result) != initialCount && len(result) > 0 {
		return filterOutliers(tr, result, cfg)
	}
	return result
}

func stopDurationScore(duration float64, cfg Config) float64 {
	value := duration
	if value == cfg.MinStopInterval {
		value += 0.1 // avoid landing exactly on the lower bound, which scores -1.0
	}
	return normaliseMid(value, cfg.MinStopInterval, cfg.RelevantStopDuration)
}

func independenceScore(r stopAttr, stopCount int, cfg Config) float64 {
	if stopCount == 1 {
		return 1.0
	}

	timeValue, ok := minOrEither(r.timePrev, r.timeNext)
	if !ok {
		timeValue = 0
	}
	var timeScore float64
	if timeValue > cfg.MaxTimeBetweenStopsForMerge {
		timeScore = 3.0
	} else {
		timeScore = normaliseMid(timeValue, cfg.MinTimeBetweenStops, cfg.RelevantTimeBetweenStops)
	}

	distValue, _ := minOrEither(r.distPrev, r.distNext)
	distScore := normaliseMid(distValue, cfg.MinDistanceBetweenStop, cfg.RelevantDistanceBetweenStop)

	if timeScore == 1.0 && distScore == -1.0 {
		return -0.001
	}
	return (timeScore + distScore) / 2
}

func mergeDirection(rows []stopAttr, i, n int, cfg Config) int {
	r := rows[i]

	if i+1 < n && rows[i+1].decision != decisionDelete {
		dp, dpOK := r.distPrev.Get()
		dn, _ := r.distNext.Get()
		tn, _ := r.timeNext.Get()
		if !dpOK || (min2(dp, dn) == dn && tn <= cfg.MaxTimeBetweenStopsForMerge) {
			return 1
		}
	}
	if i > 0 && rows[i-1].decision != decisionDelete {
		dp, dpOK := r.distPrev.Get()
		dn, _ := r.distNext.Get()
		tp, _ := r.timePrev.Get()
		if dpOK && (min2(dp, dn) == dp && tp <= cfg.MaxTimeBetweenStopsForMerge) {
			return -1
		}
	}
	return 0
}

func minOrEither(a, b OptFloat) (float64, bool) {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case aok && bok:
		return min2(av, bv), true
	case aok:
		return av, true
	case bok:
		return bv, true
	default:
		return 0, false
	}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func euclid(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return math.Sqrt(dx*dx + dy*dy)
}

// pathLengthBetween sums consecutive sample distances for every original
// trace sample timestamped within [start, stop]. Fewer than two such samples
// means the path length is unknown (ok=false) and the caller falls back to
// the straight-line centroid distance.
func pathLengthBetween(tr *trace, start, stop time.Time) (length float64, ok bool) {
	var prevX, prevY float64
	count := 0
	for i := 0; i < tr.n; i++ {
		if tr.ts[i].Before(start) || tr.ts[i].After(stop) {
			continue
		}
		if count > 0 {
			length += euclid(prevX, prevY, tr.x[i], tr.y[i])
		}
		prevX, prevY = tr.x[i], tr.y[i]
		count++
	}
	if count < 2 {
		return 0, false
	}
	return length, true
}
