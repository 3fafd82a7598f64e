package stopgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalise_BoundaryLaws(t *testing.T) {
	lower, threshold, upper := 10.0, 40.0, 100.0

	assert.Equal(t, -1.0, normalise(lower, lower, upper, threshold))
	assert.Equal(t, 1.0, normalise(upper, lower, upper, threshold))
	assert.Equal(t, 0.0, normalise(threshold, lower, upper, threshold))
}

func TestNormalise_ClampsOutOfRange(t *testing.T) {
	lower, threshold, upper := 10.0, 40.0, 100.0

	assert.Equal(t, -1.0, normalise(lower-50, lower, upper, threshold))
	assert.Equal(t, 1.0, normalise(upper+50, lower, upper, threshold))
}

func TestNormalise_Monotone(t *testing.T) {
	lower, threshold, upper := 10.0, 40.0, 100.0

	prev := normalise(lower, lower, upper, threshold)
	for v := lower + 5; v <= upper; v += 5 {
		cur := normalise(v, lower, upper, threshold)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestNormaliseMid_UsesMidpointThreshold(t *testing.T) {
	assert.Equal(t, 0.0, normaliseMid(55, 10, 100))
}

func TestNormaliseOpt_PropagatesAbsence(t *testing.T) {
	assert.Equal(t, None, normaliseOpt(None, 0, 1, 0.5))

	got := normaliseOpt(Some(0.5), 0, 1, 0.5)
	v, ok := got.Get()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}
