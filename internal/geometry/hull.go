package geometry

import "math"

// hullEpsilon is the numerical tolerance used to treat near-collinear
// orientation tests as exactly collinear.
const hullEpsilon = 1e-9

// cross returns the z-component of (b-a) x (c-a). Positive means c is to the
// left of the directed line a->b (counter-clockwise turn).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// ConvexHull computes the convex hull of points using gift wrapping
// (Jarvis march), O(n*h) with h the hull size. This is acceptable for the
// small windows (~20 points) the scoring methods use and avoids pulling in
// an external computational-geometry dependency.
//
// ok is false when the point set is degenerate: fewer than 3 distinct
// points, or all points collinear (every candidate hull edge has zero
// enclosed area). Callers should fall back to the window's first and last
// points in that case.
func ConvexHull(points []Point) (hull []Point, ok bool) {
	distinct := dedupe(points)
	if len(distinct) < 3 {
		return nil, false
	}

	start := 0
	for i, p := range distinct {
		if p.X < distinct[start].X || (p.X == distinct[start].X && p.Y < distinct[start].Y) {
			start = i
		}
	}

	hull = []Point{}
	current := start
	for {
		hull = append(hull, distinct[current])
		next := (current + 1) % len(distinct)
		for i := range distinct {
			if i == current {
				continue
			}
			c := cross(distinct[current], distinct[next], distinct[i])
			if c < -hullEpsilon {
				next = i
			} else if math.Abs(c) <= hullEpsilon {
				// Collinear candidate: keep the farther point so the hull
				// doesn't collapse onto an interior point.
				if Distance(distinct[current], distinct[i]) > Distance(distinct[current], distinct[next]) {
					next = i
				}
			}
		}
		current = next
		if current == start {
			break
		}
		if len(hull) > len(distinct) {
			// Safety valve: shouldn't happen for a correct gift wrap, but
			// guards against infinite loops on pathological input.
			break
		}
	}

	if len(hull) < 3 {
		return nil, false
	}
	return hull, true
}

func dedupe(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		seen := false
		for _, q := range out {
			if p.X == q.X && p.Y == q.Y {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, p)
		}
	}
	return out
}

// FarthestPair returns the two points in pts with maximum pairwise Euclidean
// distance, and that distance. Used on convex hull vertices (the farthest
// pair in a point set always lies on its hull) per the rectangle-distance
// method's diameter computation.
func FarthestPair(pts []Point) (a, b Point, dist float64) {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d := Distance(pts[i], pts[j])
			if d > dist {
				dist = d
				a, b = pts[i], pts[j]
			}
		}
	}
	return a, b, dist
}
