// Package refund turns a driver score and a base premium into a refund
// amount, using a configurable percentage-band tier table.
package refund

import (
	"fmt"
	"sort"

	"github.com/Driiva/Driiva/internal/config"
)

// Result is the outcome of a single refund computation.
type Result struct {
	DriverID           string
	Period             string
	DriverScore        float64
	BasePremium        int64 // minor currency units
	DiscountPct        float64
	RefundAmount       int64 // minor currency units
	DiscountedPremium  int64 // minor currency units
}

// Compute finds the tier whose [ScoreMin, ScoreMax) band contains score and
// applies its discount to premium. Scores below the lowest tier's minimum
// or at/above the highest tier's maximum clamp to the nearest band.
func Compute(driverID, period string, score float64, premium int64, tiers []config.RefundTier) (Result, error) {
	if len(tiers) == 0 {
		return Result{}, fmt.Errorf("refund: no tiers configured")
	}
	if premium < 0 {
		return Result{}, fmt.Errorf("refund: base premium must be non-negative, got %d", premium)
	}

	sorted := make([]config.RefundTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ScoreMin < sorted[j].ScoreMin })

	pct := tierFor(sorted, score)
	refund := int64(float64(premium) * pct / 100.0)

	return Result{
		DriverID:          driverID,
		Period:            period,
		DriverScore:       score,
		BasePremium:       premium,
		DiscountPct:       pct,
		RefundAmount:      refund,
		DiscountedPremium: premium - refund,
	}, nil
}

func tierFor(sorted []config.RefundTier, score float64) float64 {
	for _, tier := range sorted {
		if score >= tier.ScoreMin && score < tier.ScoreMax {
			return tier.DiscountPct
		}
	}
	if score < sorted[0].ScoreMin {
		return sorted[0].DiscountPct
	}
	return sorted[len(sorted)-1].DiscountPct
}
