package stopgo

import "math"

// ingest validates and de-duplicates the raw sample sequence per spec.md
// §4.2: rows with a missing (NaN) x or y are dropped, then rows whose
// (x, y) repeats an earlier row are dropped (first occurrence wins,
// wherever it falls in the sequence — not just immediate neighbours, which
// matches the reference implementation's whole-trace drop_duplicates).
//
// Returns an InputTooShortError if fewer than cfg.MaxWindow() samples
// survive.
func ingest(samples []Sample, cfg Config) (*trace, error) {
	type key struct{ x, y float64 }
	seen := make(map[key]struct{}, len(samples))

	tr := newTrace(0)
	for i, s := range samples {
		if math.IsNaN(s.X) || math.IsNaN(s.Y) {
			continue
		}
		k := key{s.X, s.Y}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		tr.ts = append(tr.ts, s.Timestamp)
		tr.x = append(tr.x, s.X)
		tr.y = append(tr.y, s.Y)
		tr.origIndex = append(tr.origIndex, i)
		if s.MotionScore != nil {
			tr.motion = append(tr.motion, Some(*s.MotionScore))
			tr.hasMotion = true
		} else {
			tr.motion = append(tr.motion, None)
		}
		tr.n++
	}

	need := cfg.MaxWindow()
	if tr.n < need {
		return nil, &InputTooShortError{Got: tr.n, Need: need}
	}

	tr.distNext = make([]OptFloat, tr.n)
	tr.distPrev = make([]OptFloat, tr.n)
	tr.timeDiffNext = make([]OptFloat, tr.n)
	tr.speed = make([]OptFloat, tr.n)
	tr.bearing = make([]OptFloat, tr.n)

	return tr, nil
}
