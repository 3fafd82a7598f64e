// Package tripscore turns per-trip event counters into a penalty-based
// 0-100 score and maintains each driver's rolling average over time.
package tripscore

import "github.com/Driiva/Driiva/internal/config"

// EventCounters is the raw per-trip telemetry a trip score is computed
// from.
type EventCounters struct {
	HardBrakeCount    int
	HarshAccelCount   int
	SpeedingSeconds   float64
	PhoneMotionEvents int
	DistanceMetres    float64
	DurationSeconds   float64
}

// Breakdown is a computed trip score together with the penalty each
// contributing factor subtracted from the 100-point baseline.
type Breakdown struct {
	Score               float64
	HardBrakePenalty     float64
	HarshAccelPenalty    float64
	SpeedingPenalty      float64
	PhoneMotionPenalty   float64
}

// Compute applies cfg's penalty weights to counters, subtracting each from
// a 100-point baseline and clamping the result to [0, 100].
func Compute(counters EventCounters, cfg *config.TuningConfig) Breakdown {
	b := Breakdown{
		HardBrakePenalty:   float64(counters.HardBrakeCount) * cfg.GetHardBrakeWeight(),
		HarshAccelPenalty:  float64(counters.HarshAccelCount) * cfg.GetHarshAccelWeight(),
		SpeedingPenalty:    counters.SpeedingSeconds * cfg.GetSpeedingSecondWeight(),
		PhoneMotionPenalty: float64(counters.PhoneMotionEvents) * cfg.GetPhoneMotionWeight(),
	}
	score := 100 - b.HardBrakePenalty - b.HarshAccelPenalty - b.SpeedingPenalty - b.PhoneMotionPenalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	b.Score = score
	return b
}
