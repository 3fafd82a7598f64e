package stopgo

import "github.com/Driiva/Driiva/internal/geometry"

// computeSEDA implements M4, Start-End Distance Analysis (spec.md §4.8). It
// compares the average of the window's first two points against the average
// of its last two points: a stopped vehicle barely moves between the start
// and end of the window, so a SMALL distance is stop evidence — the
// normalised score is negated, as it is for M1 and M6.
func computeSEDA(tr *trace, cfg Config) []OptFloat {
	out := make([]OptFloat, tr.n)
	if !cfg.UseMethodSEDA {
		return out
	}
	w := cfg.SEDAWindowSize

	for i := 0; i < tr.n; i++ {
		lo, hi, ok := windowAt(i, tr.n, w, w)
		if !ok {
			continue
		}
		// Need at least two points on each end to average, and they must
		// not overlap.
		if hi-lo+1 < 4 {
			continue
		}

		startX := (tr.x[lo] + tr.x[lo+1]) / 2
		startY := (tr.y[lo] + tr.y[lo+1]) / 2
		endX := (tr.x[hi-1] + tr.x[hi]) / 2
		endY := (tr.y[hi-1] + tr.y[hi]) / 2

		dist := geometry.Distance(geometry.Point{X: startX, Y: startY}, geometry.Point{X: endX, Y: endY})

		score := -normalise(dist, cfg.SEDALowerCutoff, cfg.SEDAUpperCutoff, cfg.SEDAThreshold)
		out[i] = Some(score)
	}
	return out
}
