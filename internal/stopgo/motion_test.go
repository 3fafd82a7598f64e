package stopgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func motionConfig() Config {
	return Config{
		UseMotionScore:         true,
		MotionScoreLowerCutoff: 0.3,
		MotionScoreThreshold:   1.3,
		MotionScoreUpperCutoff: 3.0,
	}
}

func TestComputeMotion_LowRawScoreIsCertainStop(t *testing.T) {
	tr := newTrace(1)
	tr.hasMotion = true
	tr.motion[0] = Some(0.3)

	scores, certain := computeMotion(tr, motionConfig())

	v, ok := scores[0].Get()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.True(t, certain[0])
}

func TestComputeMotion_HighRawScoreIsNotCertain(t *testing.T) {
	tr := newTrace(1)
	tr.hasMotion = true
	tr.motion[0] = Some(3.0)

	scores, certain := computeMotion(tr, motionConfig())

	v, ok := scores[0].Get()
	require.True(t, ok)
	assert.Equal(t, -1.0, v)
	assert.False(t, certain[0])
}

func TestComputeMotion_MissingPerSampleReadsAsStationary(t *testing.T) {
	tr := newTrace(1)
	tr.hasMotion = true
	tr.motion[0] = None

	scores, _ := computeMotion(tr, motionConfig())

	v, ok := scores[0].Get()
	require.True(t, ok)
	assert.Equal(t, -normalise(0, 0.3, 3.0, 1.3), v)
}

func TestComputeMotion_DisabledWhenNoSampleHasMotion(t *testing.T) {
	tr := newTrace(1)
	tr.hasMotion = false

	scores, certain := computeMotion(tr, motionConfig())

	_, ok := scores[0].Get()
	assert.False(t, ok)
	assert.False(t, certain[0])
}
