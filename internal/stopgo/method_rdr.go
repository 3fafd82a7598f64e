package stopgo

import "github.com/Driiva/Driiva/internal/geometry"

// computeRDR implements M2, Rectangle-Distance-Ratio (spec.md §4.6). Over a
// centred window of consecutive points, it compares the cumulative path
// length to the window's convex-hull diameter: a straight path has ratio
// ~1, a dense cluster (stop) has a large ratio.
func computeRDR(tr *trace, cfg Config) []OptFloat {
	out := make([]OptFloat, tr.n)
	if !cfg.UseMethodRDR {
		return out
	}
	w := cfg.RDRWindowSize

	for i := 0; i < tr.n; i++ {
		lo, hi, ok := windowAt(i, tr.n, w, w)
		if !ok {
			continue
		}

		pathLength, complete := sumRange(tr.distNext, lo, hi)
		if !complete {
			continue
		}

		points := make([]geometry.Point, 0, hi-lo+1)
		for j := lo; j <= hi; j++ {
			points = append(points, geometry.Point{X: tr.x[j], Y: tr.y[j]})
		}

		var diameter float64
		if hull, hullOK := geometry.ConvexHull(points); hullOK {
			_, _, diameter = geometry.FarthestPair(hull)
		} else {
			// Degenerate geometry (collinear window): fall back to the
			// window's first and last points, per spec.md §4.6 step 1.
			diameter = geometry.Distance(points[0], points[len(points)-1])
		}
		if diameter == 0 {
			continue
		}

		ratio := pathLength / diameter
		out[i] = Some(normalise(ratio, 1.0, cfg.RDRUpperCutoff, cfg.RDRThreshold))
	}
	return out
}

// sumRange sums vals[lo..hi]; complete is false if any value is absent.
func sumRange(vals []OptFloat, lo, hi int) (sum float64, complete bool) {
	complete = true
	for j := lo; j <= hi; j++ {
		v, ok := vals[j].Get()
		if !ok {
			return 0, false
		}
		sum += v
	}
	return sum, true
}
