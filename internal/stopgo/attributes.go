package stopgo

import (
	"math"

	"github.com/Driiva/Driiva/internal/geometry"
)

// computeAttributes fills distNext, distPrev, timeDiffNext, speed, and
// bearing for every sample in tr, per spec.md §4.3. Boundary samples get
// absent values for the attributes that need a missing neighbour.
func computeAttributes(tr *trace) {
	for i := 0; i < tr.n; i++ {
		p := geometry.Point{X: tr.x[i], Y: tr.y[i]}

		if i+1 < tr.n {
			next := geometry.Point{X: tr.x[i+1], Y: tr.y[i+1]}
			tr.distNext[i] = Some(geometry.Distance(p, next))
			tr.timeDiffNext[i] = Some(tr.ts[i+1].Sub(tr.ts[i]).Seconds())
		} else {
			tr.distNext[i] = None
			tr.timeDiffNext[i] = None
		}

		if i > 0 {
			prev := geometry.Point{X: tr.x[i-1], Y: tr.y[i-1]}
			tr.distPrev[i] = Some(geometry.Distance(p, prev))
		} else {
			tr.distPrev[i] = None
		}

		if dt, ok := tr.timeDiffNext[i].Get(); ok && dt > 0 {
			if d, ok := tr.distNext[i].Get(); ok {
				tr.speed[i] = Some(d / dt)
			}
		} else {
			tr.speed[i] = None
		}

		if i > 0 && i+1 < tr.n {
			tr.bearing[i] = Some(bearingDeviation(
				tr.x[i-1], tr.y[i-1],
				tr.x[i], tr.y[i],
				tr.x[i+1], tr.y[i+1],
			))
		} else {
			tr.bearing[i] = None
		}
	}
}

// bearingDeviation computes the absolute deviation, in degrees, from
// straight-line motion at point b given predecessor a and successor c, per
// spec.md §4.3: |deg(arccos(cosθ) - π)| where cosθ is the cosine of the
// angle a-b-c, clamped to [-1, 1] for numerical safety. 0° is straight-line
// motion; it grows toward 180° for a tight direction reversal.
func bearingDeviation(ax, ay, bx, by, cx, cy float64) float64 {
	bax, bay := ax-bx, ay-by
	bcx, bcy := cx-bx, cy-by

	normBA := math.Hypot(bax, bay)
	normBC := math.Hypot(bcx, bcy)
	if normBA == 0 || normBC == 0 {
		return 0
	}

	cosine := (bax*bcx + bay*bcy) / (normBA * normBC)
	cosine = math.Max(-1, math.Min(1, cosine))

	diffDeg := (math.Acos(cosine) - math.Pi) * 180 / math.Pi
	return math.Abs(diffDeg)
}
