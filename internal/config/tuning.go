package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Driiva/Driiva/internal/stopgo"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig is the root configuration for every tunable in the
// repository: the classifier's thresholds, the refund tier table, and the
// trip-scoring penalty weights. Every field is a pointer so a partial JSON
// document only overrides what it names; the Get* accessors supply the
// documented default for everything else.
type TuningConfig struct {
	// Stop/merge thresholds (spec.md §4.1)
	MinStopInterval             *float64 `json:"min_stop_interval,omitempty"`
	RelevantStopDuration        *float64 `json:"relevant_stop_duration,omitempty"`
	MinDistanceBetweenStop      *float64 `json:"min_distance_between_stop,omitempty"`
	RelevantDistanceBetweenStop *float64 `json:"relevant_distance_between_stop,omitempty"`
	MinTimeBetweenStops         *float64 `json:"min_time_between_stops,omitempty"`
	RelevantTimeBetweenStops    *float64 `json:"relevant_time_between_stops,omitempty"`
	MaxTimeBetweenStopsForMerge *float64 `json:"max_time_between_stops_for_merge,omitempty"`

	// Motion score (M1)
	UseMotionScore         *bool    `json:"use_motion_score,omitempty"`
	MotionScoreLowerCutoff *float64 `json:"motion_score_lower_cutoff,omitempty"`
	MotionScoreThreshold   *float64 `json:"motion_score_threshold,omitempty"`
	MotionScoreUpperCutoff *float64 `json:"motion_score_upper_cutoff,omitempty"`

	// Rectangle distance ratio (M2)
	UseMethodRDR   *bool    `json:"use_method_rdr,omitempty"`
	RDRWindowSize  *int     `json:"rdr_window_size,omitempty"`
	RDRThreshold   *float64 `json:"rdr_threshold,omitempty"`
	RDRUpperCutoff *float64 `json:"rdr_upper_cutoff,omitempty"`
	RDRWeight      *float64 `json:"rdr_weight,omitempty"`

	// Bearing analysis (M3)
	UseMethodBA   *bool    `json:"use_method_ba,omitempty"`
	BALowerCutoff *float64 `json:"ba_lower_cutoff,omitempty"`
	BAThreshold   *float64 `json:"ba_threshold,omitempty"`
	BAUpperCutoff *float64 `json:"ba_upper_cutoff,omitempty"`
	BAWindowSize  *int     `json:"ba_window_size,omitempty"`
	BAWeight      *float64 `json:"ba_weight,omitempty"`

	// Start-end distance analysis (M4)
	UseMethodSEDA   *bool    `json:"use_method_seda,omitempty"`
	SEDALowerCutoff *float64 `json:"seda_lower_cutoff,omitempty"`
	SEDAThreshold   *float64 `json:"seda_threshold,omitempty"`
	SEDAUpperCutoff *float64 `json:"seda_upper_cutoff,omitempty"`
	SEDAWindowSize  *int     `json:"seda_window_size,omitempty"`
	SEDAWeight      *float64 `json:"seda_weight,omitempty"`

	// Intersecting segments analysis (M5)
	UseMethodISA   *bool    `json:"use_method_isa,omitempty"`
	ISAUpperCutoff *float64 `json:"isa_upper_cutoff,omitempty"`
	ISAThreshold   *float64 `json:"isa_threshold,omitempty"`
	ISAWindowSize  *int     `json:"isa_window_size,omitempty"`
	ISAWeight      *float64 `json:"isa_weight,omitempty"`

	// Missing data analysis (M6)
	UseMethodMDA           *bool    `json:"use_method_mda,omitempty"`
	MinMissingDataInterval *float64 `json:"min_missing_data_interval,omitempty"`
	MDALowerCutoff         *float64 `json:"mda_lower_cutoff,omitempty"`
	MDAThreshold           *float64 `json:"mda_threshold,omitempty"`
	MDAUpperCutoff         *float64 `json:"mda_upper_cutoff,omitempty"`

	// Refund calculator tier table, sorted ascending by ScoreMin.
	RefundTiers []RefundTier `json:"refund_tiers,omitempty"`

	// Trip scoring penalty weights, subtracted from a 100-point baseline.
	HardBrakeWeight      *float64 `json:"hard_brake_weight,omitempty"`
	HarshAccelWeight     *float64 `json:"harsh_accel_weight,omitempty"`
	SpeedingSecondWeight *float64 `json:"speeding_second_weight,omitempty"`
	PhoneMotionWeight    *float64 `json:"phone_motion_weight,omitempty"`
	TripScoreWindowDays  *int     `json:"trip_score_window_days,omitempty"`
}

// RefundTier is one band of the refund tier table: a driver score in
// [ScoreMin, ScoreMax) earns DiscountPct percent off the base premium.
type RefundTier struct {
	ScoreMin    float64 `json:"score_min"`
	ScoreMax    float64 `json:"score_max"`
	DiscountPct float64 `json:"discount_pct"`
}

// EmptyTuningConfig returns a TuningConfig with all fields nil. Use
// LoadTuningConfig to load actual values from a defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file is
// validated to have a .json extension and to be under the max file size.
// Fields omitted from the JSON retain their documented defaults.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching the current directory and common parent
// directories. Panics if the file cannot be loaded; intended for test
// setup and startup, never for request-handling code paths.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that JSON unmarshalling cannot: refund tiers
// must be non-overlapping and ascending, and StopGoConfig must itself be
// internally consistent.
func (c *TuningConfig) Validate() error {
	for i, tier := range c.RefundTiers {
		if tier.ScoreMin >= tier.ScoreMax {
			return fmt.Errorf("refund tier %d: score_min must be below score_max", i)
		}
		if i > 0 && tier.ScoreMin < c.RefundTiers[i-1].ScoreMax {
			return fmt.Errorf("refund tier %d overlaps the previous tier", i)
		}
	}
	if err := c.StopGoConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// StopGoConfig assembles a stopgo.Config from this TuningConfig's fields,
// applying spec.md §4.1's documented defaults for anything left nil.
func (c *TuningConfig) StopGoConfig() stopgo.Config {
	d := stopgo.DefaultConfig()
	return stopgo.Config{
		MinStopInterval:             getFloat(c.MinStopInterval, d.MinStopInterval),
		RelevantStopDuration:        getFloat(c.RelevantStopDuration, d.RelevantStopDuration),
		MinDistanceBetweenStop:      getFloat(c.MinDistanceBetweenStop, d.MinDistanceBetweenStop),
		RelevantDistanceBetweenStop: getFloat(c.RelevantDistanceBetweenStop, d.RelevantDistanceBetweenStop),
		MinTimeBetweenStops:         getFloat(c.MinTimeBetweenStops, d.MinTimeBetweenStops),
		RelevantTimeBetweenStops:    getFloat(c.RelevantTimeBetweenStops, d.RelevantTimeBetweenStops),
		MaxTimeBetweenStopsForMerge: getFloat(c.MaxTimeBetweenStopsForMerge, d.MaxTimeBetweenStopsForMerge),

		UseMotionScore:         getBool(c.UseMotionScore, d.UseMotionScore),
		MotionScoreLowerCutoff: getFloat(c.MotionScoreLowerCutoff, d.MotionScoreLowerCutoff),
		MotionScoreThreshold:   getFloat(c.MotionScoreThreshold, d.MotionScoreThreshold),
		MotionScoreUpperCutoff: getFloat(c.MotionScoreUpperCutoff, d.MotionScoreUpperCutoff),

		UseMethodRDR:   getBool(c.UseMethodRDR, d.UseMethodRDR),
		RDRWindowSize:  getInt(c.RDRWindowSize, d.RDRWindowSize),
		RDRThreshold:   getFloat(c.RDRThreshold, d.RDRThreshold),
		RDRUpperCutoff: getFloat(c.RDRUpperCutoff, d.RDRUpperCutoff),
		RDRWeight:      getFloat(c.RDRWeight, d.RDRWeight),

		UseMethodBA:   getBool(c.UseMethodBA, d.UseMethodBA),
		BALowerCutoff: getFloat(c.BALowerCutoff, d.BALowerCutoff),
		BAThreshold:   getFloat(c.BAThreshold, d.BAThreshold),
		BAUpperCutoff: getFloat(c.BAUpperCutoff, d.BAUpperCutoff),
		BAWindowSize:  getInt(c.BAWindowSize, d.BAWindowSize),
		BAWeight:      getFloat(c.BAWeight, d.BAWeight),

		UseMethodSEDA:   getBool(c.UseMethodSEDA, d.UseMethodSEDA),
		SEDALowerCutoff: getFloat(c.SEDALowerCutoff, d.SEDALowerCutoff),
		SEDAThreshold:   getFloat(c.SEDAThreshold, d.SEDAThreshold),
		SEDAUpperCutoff: getFloat(c.SEDAUpperCutoff, d.SEDAUpperCutoff),
		SEDAWindowSize:  getInt(c.SEDAWindowSize, d.SEDAWindowSize),
		SEDAWeight:      getFloat(c.SEDAWeight, d.SEDAWeight),

		UseMethodISA:   getBool(c.UseMethodISA, d.UseMethodISA),
		ISAUpperCutoff: getFloat(c.ISAUpperCutoff, d.ISAUpperCutoff),
		ISAThreshold:   getFloat(c.ISAThreshold, d.ISAThreshold),
		ISAWindowSize:  getInt(c.ISAWindowSize, d.ISAWindowSize),
		ISAWeight:      getFloat(c.ISAWeight, d.ISAWeight),

		UseMethodMDA:           getBool(c.UseMethodMDA, d.UseMethodMDA),
		MinMissingDataInterval: getFloat(c.MinMissingDataInterval, d.MinMissingDataInterval),
		MDALowerCutoff:         getFloat(c.MDALowerCutoff, d.MDALowerCutoff),
		MDAThreshold:           getFloat(c.MDAThreshold, d.MDAThreshold),
		MDAUpperCutoff:         getFloat(c.MDAUpperCutoff, d.MDAUpperCutoff),
	}
}

// defaultRefundTiers is used whenever no tier table is configured: a
// three-band schedule with no discount below 50, 10% from 50 and 25% from 80.
var defaultRefundTiers = []RefundTier{
	{ScoreMin: 0, ScoreMax: 50, DiscountPct: 0},
	{ScoreMin: 50, ScoreMax: 80, DiscountPct: 10},
	{ScoreMin: 80, ScoreMax: 100.0001, DiscountPct: 25},
}

// GetRefundTiers returns the configured tier table, or the default
// three-band schedule if none was supplied.
func (c *TuningConfig) GetRefundTiers() []RefundTier {
	if len(c.RefundTiers) == 0 {
		return defaultRefundTiers
	}
	return c.RefundTiers
}

func (c *TuningConfig) GetHardBrakeWeight() float64      { return getFloat(c.HardBrakeWeight, 2.0) }
func (c *TuningConfig) GetHarshAccelWeight() float64     { return getFloat(c.HarshAccelWeight, 2.0) }
func (c *TuningConfig) GetSpeedingSecondWeight() float64 { return getFloat(c.SpeedingSecondWeight, 0.05) }
func (c *TuningConfig) GetPhoneMotionWeight() float64    { return getFloat(c.PhoneMotionWeight, 1.5) }
func (c *TuningConfig) GetTripScoreWindowDays() int      { return getInt(c.TripScoreWindowDays, 30) }

func getFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func getInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func getBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
