package stopgo

import "sort"

// computeBA implements M3, Bearing Analysis (spec.md §4.7). Over a centred
// window of bearing deviations, the single largest and smallest readings are
// trimmed (they are usually noise from a single sharp turn or a near-straight
// sample) and the mean of the remainder is normalised: a high trimmed-mean
// deviation means the vehicle spent the window changing direction
// repeatedly, which is stop evidence.
//
// BA tolerates a window one sample short of WindowSize at the trace
// boundary, per spec.md §9.
func computeBA(tr *trace, cfg Config) []OptFloat {
	out := make([]OptFloat, tr.n)
	if !cfg.UseMethodBA {
		return out
	}
	w := cfg.BAWindowSize

	for i := 0; i < tr.n; i++ {
		lo, hi, ok := windowAt(i, tr.n, w, w-1)
		if !ok {
			continue
		}

		vals := make([]float64, 0, hi-lo+1)
		for j := lo; j <= hi; j++ {
			if v, vok := tr.bearing[j].Get(); vok {
				vals = append(vals, v)
			}
		}
		// Need at least 3 readings so trimming the min and max still leaves
		// something to average.
		if len(vals) < 3 {
			continue
		}

		sort.Float64s(vals)
		trimmed := vals[1 : len(vals)-1]

		sum := 0.0
		for _, v := range trimmed {
			sum += v
		}
		mean := sum / float64(len(trimmed))

		out[i] = Some(normalise(mean, cfg.BALowerCutoff, cfg.BAUpperCutoff, cfg.BAThreshold))
	}
	return out
}
