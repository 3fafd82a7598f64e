package refund

import (
	"database/sql"
	"fmt"

	driivadb "github.com/Driiva/Driiva/internal/db"
	"github.com/Driiva/Driiva/internal/timeutil"
)

// Store persists refund computations keyed by driver and billing period.
type Store struct {
	db    *driivadb.DB
	clock timeutil.Clock
}

// NewStore wraps an open database connection. clock supplies the
// computed_at timestamp; pass timeutil.RealClock{} in production.
func NewStore(db *driivadb.DB, clock timeutil.Clock) *Store {
	return &Store{db: db, clock: clock}
}

// Persist upserts a Result under its (driver, period) key.
func (s *Store) Persist(r Result) error {
	_, err := s.db.Exec(`
		INSERT INTO refund_record
			(driver_id, period, driver_score, base_premium, discount_pct, refund_amount, discounted_premium, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (driver_id, period) DO UPDATE SET
			driver_score = excluded.driver_score,
			base_premium = excluded.base_premium,
			discount_pct = excluded.discount_pct,
			refund_amount = excluded.refund_amount,
			discounted_premium = excluded.discounted_premium,
			computed_at = excluded.computed_at
	`, r.DriverID, r.Period, r.DriverScore, r.BasePremium, r.DiscountPct, r.RefundAmount, r.DiscountedPremium,
		s.clock.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("refund: persist %s/%s: %w", r.DriverID, r.Period, err)
	}
	return nil
}

// Get retrieves the refund result for a driver and period.
func (s *Store) Get(driverID, period string) (Result, error) {
	var r Result
	err := s.db.QueryRow(`
		SELECT driver_id, period, driver_score, base_premium, discount_pct, refund_amount, discounted_premium
		FROM refund_record WHERE driver_id = ? AND period = ?
	`, driverID, period).Scan(&r.DriverID, &r.Period, &r.DriverScore, &r.BasePremium, &r.DiscountPct, &r.RefundAmount, &r.DiscountedPremium)
	if err == sql.ErrNoRows {
		return Result{}, fmt.Errorf("refund: no record for %s/%s: %w", driverID, period, err)
	}
	if err != nil {
		return Result{}, fmt.Errorf("refund: get %s/%s: %w", driverID, period, err)
	}
	return r, nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
