package stopgo

import "fmt"

// Config carries every tunable threshold for the classifier. It is a plain
// value type: two Config values with the same fields behave identically,
// there is no hidden shared state, and copying a Config is always safe
// across goroutines. Callers usually obtain one from
// internal/config.TuningConfig's StopGoConfig method rather than constructing
// it by hand.
type Config struct {
	MinStopInterval             float64 // seconds
	RelevantStopDuration        float64 // seconds
	MinDistanceBetweenStop      float64 // metres
	RelevantDistanceBetweenStop float64 // metres
	MinTimeBetweenStops         float64 // seconds
	RelevantTimeBetweenStops    float64 // seconds
	MaxTimeBetweenStopsForMerge float64 // seconds

	UseMotionScore          bool
	MotionScoreLowerCutoff  float64
	MotionScoreThreshold    float64
	MotionScoreUpperCutoff  float64

	UseMethodRDR         bool
	RDRWindowSize        int
	RDRThreshold         float64
	RDRUpperCutoff       float64
	RDRWeight            float64

	UseMethodBA    bool
	BALowerCutoff  float64
	BAThreshold    float64
	BAUpperCutoff  float64
	BAWindowSize   int
	BAWeight       float64

	UseMethodSEDA   bool
	SEDALowerCutoff float64
	SEDAThreshold   float64
	SEDAUpperCutoff float64
	SEDAWindowSize  int
	SEDAWeight      float64

	UseMethodISA   bool
	ISAUpperCutoff float64
	ISAThreshold   float64
	ISAWindowSize  int
	ISAWeight      float64

	UseMethodMDA           bool
	MinMissingDataInterval float64 // seconds
	MDALowerCutoff         float64
	MDAThreshold           float64
	MDAUpperCutoff         float64
}

// DefaultConfig returns the thresholds documented in spec.md §4.1, taken
// from the reference implementation's calibrated defaults.
func DefaultConfig() Config {
	return Config{
		MinStopInterval:             63,
		RelevantStopDuration:        178,
		MinDistanceBetweenStop:      37,
		RelevantDistanceBetweenStop: 165,
		MinTimeBetweenStops:         69,
		RelevantTimeBetweenStops:    131,
		MaxTimeBetweenStopsForMerge: 175,

		UseMotionScore:         true,
		MotionScoreLowerCutoff: 0.29,
		MotionScoreThreshold:   1.30,
		MotionScoreUpperCutoff: 3.00,

		UseMethodRDR:   true,
		RDRWindowSize:  23,
		RDRThreshold:   1.95,
		RDRUpperCutoff: 2.875,
		RDRWeight:      0.735,

		UseMethodBA:   true,
		BALowerCutoff: 31,
		BAThreshold:   41,
		BAUpperCutoff: 82,
		BAWindowSize:  15,
		BAWeight:      1.2,

		UseMethodSEDA:   true,
		SEDALowerCutoff: 19,
		SEDAThreshold:   95,
		SEDAUpperCutoff: 262,
		SEDAWindowSize:  14,
		SEDAWeight:      1.125,

		UseMethodISA:   true,
		ISAUpperCutoff: 4,
		ISAThreshold:   0.75,
		ISAWindowSize:  19,
		ISAWeight:      0.43,

		UseMethodMDA:           true,
		MinMissingDataInterval: 53,
		MDALowerCutoff:         0.39,
		MDAThreshold:           1.4,
		MDAUpperCutoff:         26,
	}
}

// MaxWindow returns the largest window size among the currently enabled
// windowed methods (RDR, BA, SEDA, ISA). M1 and M6 have no window. This is
// the minimum trace length the classifier can operate on.
func (c Config) MaxWindow() int {
	max := 0
	if c.UseMethodRDR && c.RDRWindowSize > max {
		max = c.RDRWindowSize
	}
	if c.UseMethodBA && c.BAWindowSize > max {
		max = c.BAWindowSize
	}
	if c.UseMethodSEDA && c.SEDAWindowSize > max {
		max = c.SEDAWindowSize
	}
	if c.UseMethodISA && c.ISAWindowSize > max {
		max = c.ISAWindowSize
	}
	return max
}

// Validate checks the invariants spec.md §4.1/§7 require before a
// classification run can proceed. A failure here is a ConfigError.
func (c Config) Validate() error {
	if !c.UseMethodRDR && !c.UseMethodBA && !c.UseMethodSEDA {
		return &ConfigError{Reason: "no scoring method enabled: at least one of RDR, BA, SEDA must be enabled"}
	}
	if c.MaxWindow() <= 0 {
		return &ConfigError{Reason: "all enabled windowed methods have a non-positive window size"}
	}
	for name, w := range map[string]int{
		"RDR":  c.RDRWindowSize,
		"BA":   c.BAWindowSize,
		"SEDA": c.SEDAWindowSize,
		"ISA":  c.ISAWindowSize,
	} {
		if w < 0 {
			return &ConfigError{Reason: fmt.Sprintf("%s window size must be non-negative, got %d", name, w)}
		}
	}
	return nil
}
