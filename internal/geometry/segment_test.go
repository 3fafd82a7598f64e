package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersect_Crossing(t *testing.T) {
	s := Segment{Point{0, 0}, Point{2, 2}}
	tt := Segment{Point{0, 2}, Point{2, 0}}
	assert.True(t, Intersect(s, tt))
}

func TestIntersect_Parallel(t *testing.T) {
	s := Segment{Point{0, 0}, Point{2, 0}}
	tt := Segment{Point{0, 1}, Point{2, 1}}
	assert.False(t, Intersect(s, tt))
}

func TestIntersect_TouchingEndpointsNotCounted(t *testing.T) {
	s := Segment{Point{0, 0}, Point{1, 0}}
	tt := Segment{Point{1, 0}, Point{2, 0}}
	// Collinear, sharing only an endpoint: the strict orientation test
	// reports no intersection since the ccw comparisons are not unequal.
	assert.False(t, Intersect(s, tt))
}

func TestIntersect_Disjoint(t *testing.T) {
	s := Segment{Point{0, 0}, Point{1, 0}}
	tt := Segment{Point{5, 5}, Point{6, 6}}
	assert.False(t, Intersect(s, tt))
}
