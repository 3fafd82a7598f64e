package stopgo

import "github.com/Driiva/Driiva/internal/geometry"

// computeISA implements M5, Intersecting Segments Analysis (spec.md §4.9). A
// vehicle that is stopped but still jittering its GPS fix tends to retrace
// its own path: consecutive travel segments inside the window cross each
// other repeatedly. The score counts those crossings, banded to segment
// pairs fewer than WindowSize samples apart (closer pairs only — distant
// crossings are route geometry, not jitter).
func computeISA(tr *trace, cfg Config) []OptFloat {
	out := make([]OptFloat, tr.n)
	if !cfg.UseMethodISA {
		return out
	}
	w := cfg.ISAWindowSize
	segCount := tr.n - 1
	if segCount < 1 {
		return out
	}

	segment := func(idx int) geometry.Segment {
		return geometry.Segment{
			A: geometry.Point{X: tr.x[idx], Y: tr.y[idx]},
			B: geometry.Point{X: tr.x[idx+1], Y: tr.y[idx+1]},
		}
	}

	for i := 0; i < tr.n; i++ {
		lo, hi, ok := windowAt(i, tr.n, w, w)
		if !ok {
			continue
		}

		var crossings float64
		rowEnd := hi
		if rowEnd > segCount {
			rowEnd = segCount
		}
		for row := lo; row < rowEnd; row++ {
			colStart := row + 2
			colEnd := row + w
			if colEnd > hi {
				colEnd = hi
			}
			if colEnd > segCount {
				colEnd = segCount
			}
			for col := colStart; col < colEnd; col++ {
				if geometry.Intersect(segment(row), segment(col)) {
					crossings++
				}
			}
		}

		out[i] = Some(normalise(crossings, 0, cfg.ISAUpperCutoff, cfg.ISAThreshold))
	}
	return out
}
