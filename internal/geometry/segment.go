package geometry

// Segment is a directed line segment between two planar points.
type Segment struct {
	A, B Point
}

// ccw reports whether a, b, c form a counter-clockwise turn.
func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// Intersect reports whether segments s and t intersect, using the standard
// orientation test: s and t intersect iff the endpoints of each segment lie
// on opposite sides of the other segment's line.
func Intersect(s, t Segment) bool {
	a, b := s.A, s.B
	c, d := t.A, t.B
	return ccw(a, c, d) != ccw(b, c, d) && ccw(a, b, c) != ccw(a, b, d)
}
