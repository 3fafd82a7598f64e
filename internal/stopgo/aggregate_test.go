package stopgo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTrace(ts []time.Time, x, y []float64) *trace {
	tr := newTrace(len(ts))
	copy(tr.ts, ts)
	copy(tr.x, x)
	copy(tr.y, y)
	return tr
}

func secs(base time.Time, offsets ...int) []time.Time {
	out := make([]time.Time, len(offsets))
	for i, o := range offsets {
		out[i] = base.Add(time.Duration(o) * time.Second)
	}
	return out
}

func TestAggregate_AllStopProducesSingleInterval(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := secs(base, 0, 1, 2, 3, 4)
	tr := buildTrace(ts, []float64{0, 0, 0, 0, 0}, []float64{0, 0, 0, 0, 0})

	fused := make([]fusedSample, 5)
	for i := range fused {
		fused[i] = fusedSample{Overall: Some(0.5), IsStop: true, Confidence: 0.5}
	}

	stops := aggregate(tr, fused)

	require.Len(t, stops, 1)
	assert.Equal(t, ts[0], stops[0].Start)
	assert.Equal(t, ts[4], stops[0].Stop)
}

func TestAggregate_AllTripProducesNoStop(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := secs(base, 0, 1, 2)
	tr := buildTrace(ts, []float64{0, 1, 2}, []float64{0, 0, 0})

	fused := make([]fusedSample, 3)
	for i := range fused {
		fused[i] = fusedSample{Overall: Some(-0.5), IsStop: false}
	}

	stops := aggregate(tr, fused)
	assert.Empty(t, stops)
}

func TestAggregate_TripStopTripProducesOneInterval(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := secs(base, 0, 1, 2, 3, 4, 5)
	tr := buildTrace(ts,
		[]float64{0, 1, 2, 2, 2, 3},
		[]float64{0, 0, 0, 0, 0, 0})

	decisions := []bool{false, false, true, true, false, false}
	fused := make([]fusedSample, 6)
	for i, stop := range decisions {
		score := -0.5
		if stop {
			score = 0.5
		}
		fused[i] = fusedSample{Overall: Some(score), IsStop: stop}
	}

	stops := aggregate(tr, fused)

	require.Len(t, stops, 1)
	assert.Equal(t, ts[2], stops[0].Start)
	assert.Equal(t, ts[4], stops[0].Stop, "a stop interval ends at the first sample after it, not its own last stop sample")
}

func TestAggregate_SkipsSamplesWithAbsentOverallScore(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := secs(base, 0, 1, 2)
	tr := buildTrace(ts, []float64{0, 0, 0}, []float64{0, 0, 0})

	fused := []fusedSample{
		{Overall: None},
		{Overall: Some(0.5), IsStop: true},
		{Overall: None},
	}

	stops := aggregate(tr, fused)
	require.Len(t, stops, 1)
	assert.Equal(t, ts[1], stops[0].Start)
	assert.Equal(t, ts[1], stops[0].Stop)
}
