package stopgo

import "gonum.org/v1/gonum/floats"

// fusedSample carries the final per-sample scoring outcome (spec.md §4.11).
type fusedSample struct {
	Overall    OptFloat
	IsStop     bool
	Confidence float64
}

// fuse combines the six methods' scores into one decision per sample.
//
// Precedence: a sample M1 marked as a certain stop uses the motion score
// directly; otherwise a present MDA score wins; otherwise the weighted mean
// of whichever of the four windowed methods (RDR, BA, SEDA, ISA) have a
// score for that sample is used. That selection
// is then smoothed with a 5-wide centred rolling mean, except a strongly
// positive MDA reading (a long silent gap) always overrides the smoothed
// value, and a sample with no smoothed value falls back to its unsmoothed
// selection. Samples with no score at all (usually the first/last few, where
// no windowed method has a complete window) are reported absent; the caller
// drops them from the classified output.
func fuse(tr *trace, cfg Config, motion []OptFloat, certain []bool, rdr, ba, seda, isa, mda []OptFloat) []fusedSample {
	n := tr.n
	weights := [4]float64{cfg.RDRWeight, cfg.BAWeight, cfg.SEDAWeight, cfg.ISAWeight}

	algorithmScore := make([]OptFloat, n)
	presentVals := make([]float64, 0, 4)
	presentWeights := make([]float64, 0, 4)
	for i := 0; i < n; i++ {
		scores := [4]OptFloat{rdr[i], ba[i], seda[i], isa[i]}
		presentVals = presentVals[:0]
		presentWeights = presentWeights[:0]
		for j, s := range scores {
			if v, ok := s.Get(); ok {
				presentVals = append(presentVals, v)
				presentWeights = append(presentWeights, weights[j])
			}
		}
		if len(presentVals) == 0 {
			continue
		}
		sum := floats.Dot(presentVals, presentWeights)
		weightSum := floats.Sum(presentWeights)
		if weightSum == 0 {
			continue
		}
		algorithmScore[i] = Some(sum / weightSum)
	}

	selected := make([]OptFloat, n)
	for i := 0; i < n; i++ {
		if certain[i] {
			selected[i] = motion[i]
			continue
		}
		if v, ok := mda[i].Get(); ok {
			selected[i] = Some(v)
			continue
		}
		selected[i] = algorithmScore[i]
	}

	const smoothingWindow = 5
	smoothed := centeredMean(selected, smoothingWindow)

	out := make([]fusedSample, n)
	for i := 0; i < n; i++ {
		var final OptFloat

		if v, ok := mda[i].Get(); ok && v > 0 {
			final = Some(v)
		} else if v, ok := smoothed[i].Get(); ok {
			final = Some(v)
		} else {
			final = selected[i]
		}

		out[i].Overall = final
		if v, ok := final.Get(); ok {
			out[i].IsStop = v > 0
			out[i].Confidence = abs(v)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
