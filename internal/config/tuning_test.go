package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Driiva/Driiva/internal/stopgo"
)

// TestLoadDefaultsFile verifies that the canonical defaults file loads correctly
// and that all fields are populated with values in valid ranges.
func TestLoadDefaultsFile(t *testing.T) {
	cfg := MustLoadDefaultConfig()

	if cfg.MinStopInterval == nil {
		t.Fatal("MinStopInterval must be set")
	}
	if cfg.UseMethodRDR == nil {
		t.Fatal("UseMethodRDR must be set")
	}
	if cfg.RDRWindowSize == nil {
		t.Fatal("RDRWindowSize must be set")
	}
	if len(cfg.RefundTiers) == 0 {
		t.Fatal("RefundTiers must be populated")
	}

	if *cfg.MinStopInterval <= 0 {
		t.Errorf("MinStopInterval must be positive, got %f", *cfg.MinStopInterval)
	}
	if *cfg.RDRWindowSize <= 0 {
		t.Errorf("RDRWindowSize must be positive, got %d", *cfg.RDRWindowSize)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must pass Validate(): %v", err)
	}
	if err := cfg.StopGoConfig().Validate(); err != nil {
		t.Errorf("assembled StopGoConfig must pass Validate(): %v", err)
	}
}

// TestEmptyTuningConfig verifies that EmptyTuningConfig returns all nil fields.
func TestEmptyTuningConfig(t *testing.T) {
	cfg := EmptyTuningConfig()

	if cfg.MinStopInterval != nil {
		t.Error("expected MinStopInterval to be nil")
	}
	if cfg.UseMethodRDR != nil {
		t.Error("expected UseMethodRDR to be nil")
	}
	if cfg.RefundTiers != nil {
		t.Error("expected RefundTiers to be nil")
	}

	// An empty config must still assemble a valid StopGoConfig from defaults.
	if err := cfg.StopGoConfig().Validate(); err != nil {
		t.Errorf("empty config's StopGoConfig should fall back to valid defaults: %v", err)
	}
	if got := cfg.GetRefundTiers(); len(got) == 0 {
		t.Error("GetRefundTiers() should fall back to the default tier table")
	}
}

// TestStopGoConfig_PartialOverrideKeepsRestAtDefault verifies that setting a
// single field only changes that field in the assembled stopgo.Config.
func TestStopGoConfig_PartialOverrideKeepsRestAtDefault(t *testing.T) {
	cfg := EmptyTuningConfig()
	override := 99.0
	cfg.MinStopInterval = &override

	sg := cfg.StopGoConfig()
	if sg.MinStopInterval != 99.0 {
		t.Errorf("expected overridden MinStopInterval 99.0, got %f", sg.MinStopInterval)
	}
	def := stopgo.DefaultConfig()
	if sg.RDRWindowSize != def.RDRWindowSize {
		t.Errorf("expected untouched RDRWindowSize to retain default %d, got %d", def.RDRWindowSize, sg.RDRWindowSize)
	}
}

// TestLoadTuningConfig_RejectsNonJSONExtension verifies the extension guard.
func TestLoadTuningConfig_RejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected an error for a non-.json config file")
	}
}

// TestLoadTuningConfig_RejectsOversizedFile verifies the 1MB size cap.
func TestLoadTuningConfig_RejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.json")
	big := make([]byte, 2*1024*1024)
	for i := range big {
		big[i] = ' '
	}
	if err := os.WriteFile(path, big, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected an error for an oversized config file")
	}
}

// TestLoadTuningConfig_RejectsOverlappingRefundTiers verifies tier validation.
func TestLoadTuningConfig_RejectsOverlappingRefundTiers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	body := `{"refund_tiers":[{"score_min":0,"score_max":60,"discount_pct":5},{"score_min":50,"score_max":100,"discount_pct":20}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected an error for overlapping refund tiers")
	}
}

// TestGetRefundTiers_FallsBackWhenUnset verifies the default tier table.
func TestGetRefundTiers_FallsBackWhenUnset(t *testing.T) {
	cfg := EmptyTuningConfig()
	tiers := cfg.GetRefundTiers()
	if len(tiers) != 3 {
		t.Fatalf("expected 3 default tiers, got %d", len(tiers))
	}
	if tiers[0].DiscountPct != 0 {
		t.Errorf("expected the lowest tier to carry no discount, got %f", tiers[0].DiscountPct)
	}
}

// TestTripScoreAccessors_FallBackToDefaults verifies the penalty weight getters.
func TestTripScoreAccessors_FallBackToDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()
	if cfg.GetHardBrakeWeight() <= 0 {
		t.Error("GetHardBrakeWeight() must return a positive default")
	}
	if cfg.GetTripScoreWindowDays() != 30 {
		t.Errorf("expected default trip score window of 30 days, got %d", cfg.GetTripScoreWindowDays())
	}
}
