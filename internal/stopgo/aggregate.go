package stopgo

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// classifiedSample is a fused sample with its absence already resolved — the
// aggregator only ever sees samples fuse() could actually decide on.
type classifiedSample struct {
	index  int
	ts     time.Time
	isStop bool
}

// aggregate walks the per-sample stop/trip decisions and turns runs of
// consecutive "stop" decisions into StopInterval boundaries (spec.md §4.12).
// A run's start boundary is the timestamp of its first stop sample; its end
// boundary is the timestamp of the first sample AFTER the run returns to
// "trip" — not the run's own last sample — so a stop interval always abuts
// the trip that follows it with no gap.
func aggregate(tr *trace, fused []fusedSample) []StopInterval {
	samples := make([]classifiedSample, 0, tr.n)
	for i, f := range fused {
		if _, ok := f.Overall.Get(); !ok {
			continue
		}
		samples = append(samples, classifiedSample{index: i, ts: tr.ts[i], isStop: f.IsStop})
	}
	if len(samples) == 0 {
		return nil
	}

	type boundary struct {
		ts    time.Time
		start bool
	}
	var changes []boundary

	prevDecision := samples[0].isStop
	for k, s := range samples {
		decisionShifted := prevDecision
		if k == 0 {
			decisionShifted = s.isStop
		}
		if s.isStop != decisionShifted {
			changes = append(changes, boundary{ts: s.ts, start: s.isStop && !decisionShifted})
		}
		prevDecision = s.isStop
	}

	if len(changes) == 0 {
		if !samples[0].isStop {
			return nil
		}
		return []StopInterval{buildInterval(tr, samples[0].ts, samples[len(samples)-1].ts)}
	}

	if !changes[0].start {
		changes = append([]boundary{{ts: samples[0].ts, start: true}}, changes...)
	}
	if changes[len(changes)-1].start {
		changes = append(changes, boundary{ts: samples[len(samples)-1].ts, start: false})
	}

	intervals := make([]StopInterval, 0, len(changes)/2)
	for k := 0; k+1 < len(changes); k += 2 {
		intervals = append(intervals, buildInterval(tr, changes[k].ts, changes[k+1].ts))
	}
	return intervals
}

// buildInterval fills duration and the median centroid of every original
// trace sample timestamped within [start, stop].
func buildInterval(tr *trace, start, stop time.Time) StopInterval {
	var xs, ys []float64
	for i := 0; i < tr.n; i++ {
		if tr.ts[i].Before(start) || tr.ts[i].After(stop) {
			continue
		}
		xs = append(xs, tr.x[i])
		ys = append(ys, tr.y[i])
	}
	sort.Float64s(xs)
	sort.Float64s(ys)

	return StopInterval{
		Start:           start,
		Stop:            stop,
		DurationSeconds: stop.Sub(start).Seconds(),
		CentroidX:       median(xs),
		CentroidY:       median(ys),
	}
}

func median(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
