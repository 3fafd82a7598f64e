package stopgo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdrConfig(window int) Config {
	return Config{
		UseMethodRDR:   true,
		RDRWindowSize:  window,
		RDRThreshold:   2,
		RDRUpperCutoff: 5,
		RDRWeight:      1,
	}
}

func TestComputeRDR_StraightLineScoresLow(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 11
	ts := make([]time.Time, n)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		ts[i] = base.Add(time.Duration(i) * time.Second)
		x[i] = float64(i)
	}
	tr := buildTrace(ts, x, y)
	computeAttributes(tr)

	out := computeRDR(tr, rdrConfig(5))

	v, ok := out[5].Get()
	require.True(t, ok)
	// The window's path length (5 unit segments, including the one step
	// past the window's last point) over a degenerate-collinear hull's
	// first/last-point fallback distance (4) gives ratio 1.25, which reads
	// as weak trip evidence against threshold 2.
	assert.InDelta(t, -0.75, v, 1e-9)
}

func TestComputeRDR_JitteringClusterScoresHigherThanStraightLine(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 11
	ts := make([]time.Time, n)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		ts[i] = base.Add(time.Duration(i) * time.Second)
		// cycle through 3 nearby non-collinear points: a real convex hull
		// with a tiny diameter, but a long cumulative path as the fix
		// bounces between the three corners.
		switch i % 3 {
		case 0:
			x[i], y[i] = 0, 0
		case 1:
			x[i], y[i] = 0.01, 0
		case 2:
			x[i], y[i] = 0, 0.01
		}
	}
	tr := buildTrace(ts, x, y)
	computeAttributes(tr)

	out := computeRDR(tr, rdrConfig(5))

	v, ok := out[5].Get()
	require.True(t, ok)
	assert.Greater(t, v, 0.0, "a jittering cluster accumulates path length far beyond its tiny hull diameter")
}

func TestComputeRDR_DisabledReturnsAbsent(t *testing.T) {
	cfg := rdrConfig(5)
	cfg.UseMethodRDR = false

	tr := newTrace(5)
	out := computeRDR(tr, cfg)
	for _, o := range out {
		_, ok := o.Get()
		assert.False(t, ok)
	}
}
