package stopgo

import "gonum.org/v1/gonum/floats"

// windowAt computes the centred window of size w around sample i in a
// trace of length n, per spec.md §9 ("all rolling operators are centred
// with min_periods = window_size, or size-1 for BA"). minCount is the
// smallest window length tolerated at the trace boundary (w for every
// method except BA, which tolerates w-1).
//
// lo/hi are inclusive bounds clamped to [0, n). ok is false when even the
// clamped window is shorter than minCount — the caller should treat the
// score as absent.
func windowAt(i, n, w, minCount int) (lo, hi int, ok bool) {
	left := (w - 1) / 2
	right := w / 2

	lo = i - left
	hi = i + right
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	count := hi - lo + 1
	if count < minCount || count <= 0 {
		return 0, 0, false
	}
	return lo, hi, true
}

// centeredMean computes a centred rolling mean of width w over vals,
// min_periods = w, used by the final fusion smoothing pass (spec.md
// §4.11). Absent inputs make the corresponding output absent.
func centeredMean(vals []OptFloat, w int) []OptFloat {
	n := len(vals)
	out := make([]OptFloat, n)
	window := make([]float64, 0, w)
	for i := 0; i < n; i++ {
		lo, hi, ok := windowAt(i, n, w, w)
		if !ok {
			continue
		}
		window = window[:0]
		complete := true
		for j := lo; j <= hi; j++ {
			v, vok := vals[j].Get()
			if !vok {
				complete = false
				break
			}
			window = append(window, v)
		}
		if complete {
			out[i] = Some(floats.Sum(window) / float64(len(window)))
		}
	}
	return out
}
