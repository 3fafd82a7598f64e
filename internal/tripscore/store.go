package tripscore

import (
	"fmt"
	"time"

	driivadb "github.com/Driiva/Driiva/internal/db"
	"github.com/Driiva/Driiva/internal/timeutil"
)

// Store persists per-trip scores and retrieves a driver's trip history for
// rolling-average computation.
type Store struct {
	db    *driivadb.DB
	clock timeutil.Clock
}

// NewStore wraps an open database connection.
func NewStore(db *driivadb.DB, clock timeutil.Clock) *Store {
	return &Store{db: db, clock: clock}
}

// Record appends a trip's event counters and its computed score to history.
func (s *Store) Record(driverID, tripID string, counters EventCounters, b Breakdown) error {
	_, err := s.db.Exec(`
		INSERT INTO trip_score
			(driver_id, trip_id, hard_brake_count, harsh_accel_count, speeding_seconds, phone_motion_events, distance_metres, duration_seconds, score, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, driverID, tripID, counters.HardBrakeCount, counters.HarshAccelCount, counters.SpeedingSeconds,
		counters.PhoneMotionEvents, counters.DistanceMetres, counters.DurationSeconds, b.Score,
		s.clock.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("tripscore: record trip %s: %w", tripID, err)
	}
	return nil
}

// History returns every scored trip recorded for driverID, oldest first.
func (s *Store) History(driverID string) ([]ScoredTrip, error) {
	rows, err := s.db.Query(`
		SELECT trip_id, score, recorded_at FROM trip_score
		WHERE driver_id = ? ORDER BY recorded_at ASC
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("tripscore: history for %s: %w", driverID, err)
	}
	defer rows.Close()

	var out []ScoredTrip
	for rows.Next() {
		var t ScoredTrip
		var recordedAt string
		if err := rows.Scan(&t.TripID, &t.Score, &recordedAt); err != nil {
			return nil, fmt.Errorf("tripscore: scan history row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("tripscore: parse recorded_at %q: %w", recordedAt, err)
		}
		t.RecordedAt = parsed
		out = append(out, t)
	}
	return out, rows.Err()
}

// RollingAverage loads driverID's history and reports the mean score over
// the configured trailing window, as of the store's clock.
func (s *Store) RollingAverage(driverID string, windowDays int) (avg float64, count int, err error) {
	history, err := s.History(driverID)
	if err != nil {
		return 0, 0, err
	}
	avg, count = RollingAverage(history, s.clock.Now(), windowDays)
	return avg, count, nil
}
