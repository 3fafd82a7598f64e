package stopgo

// computeMotion implements M1 (spec.md §4.5). It returns, per sample, the
// normalised motion score and whether that sample is "certain" (exempted
// from the windowed methods and from M6).
//
// M1 is disabled entirely when no sample in the trace carries a motion
// score (tr.hasMotion == false) or the config turns it off; every sample
// is then "uncertain" and M1's score is absent.
func computeMotion(tr *trace, cfg Config) (scores []OptFloat, certain []bool) {
	scores = make([]OptFloat, tr.n)
	certain = make([]bool, tr.n)

	if !cfg.UseMotionScore || !tr.hasMotion {
		return scores, certain
	}

	for i := 0; i < tr.n; i++ {
		raw, ok := tr.motion[i].Get()
		if !ok {
			raw = 0.0 // present-overall but missing-per-sample reads as stationary
		}
		m1 := -normalise(raw, cfg.MotionScoreLowerCutoff, cfg.MotionScoreUpperCutoff, cfg.MotionScoreThreshold)
		scores[i] = Some(m1)
		if m1 == 1.0 {
			certain[i] = true
		}
	}
	return scores, certain
}
