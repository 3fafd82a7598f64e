package stopgo

import "github.com/Driiva/Driiva/internal/geometry"

// computeMDA implements M6, Missing Data Analysis (spec.md §4.10). A long
// gap between fixes that M1 could not classify as a certain stop is often
// the vehicle idling somewhere with no signal, rather than actually
// travelling the straight-line distance between the two fixes: the
// effective speed across the gap is checked against a low threshold, and a
// LOW implied speed is stop evidence, so the normalised score is negated.
//
// Unlike the other methods, MDA only considers the subsequence of samples
// M1 left uncertain, re-deriving distance/time/speed between consecutive
// uncertain samples rather than consecutive samples overall. A qualifying
// gap's score is assigned to the uncertain sample immediately before it —
// never broadcast across the gap.
func computeMDA(tr *trace, certain []bool, cfg Config) []OptFloat {
	out := make([]OptFloat, tr.n)
	if !cfg.UseMethodMDA {
		return out
	}

	uncertain := make([]int, 0, tr.n)
	for i := 0; i < tr.n; i++ {
		if !certain[i] {
			uncertain = append(uncertain, i)
		}
	}

	for k := 0; k+1 < len(uncertain); k++ {
		a, b := uncertain[k], uncertain[k+1]

		timeDiff := tr.ts[b].Sub(tr.ts[a]).Seconds()
		if timeDiff < cfg.MinMissingDataInterval {
			continue
		}
		if timeDiff <= 0 {
			continue
		}

		dist := geometry.Distance(geometry.Point{X: tr.x[a], Y: tr.y[a]}, geometry.Point{X: tr.x[b], Y: tr.y[b]})
		speedKMH := (dist / timeDiff) * 3.6

		score := -normalise(speedKMH, cfg.MDALowerCutoff, cfg.MDAUpperCutoff, cfg.MDAThreshold)
		out[a] = Some(score)
	}
	return out
}
