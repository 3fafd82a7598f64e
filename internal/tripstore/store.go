// Package tripstore is the classification persistence adapter: it stores a
// stopgo.ClassificationResult under a trip identifier and maintains a
// summary row for quick lookups. It never reaches into the classifier's
// internals — it only serialises what Classify already returned.
package tripstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	driivadb "github.com/Driiva/Driiva/internal/db"
	"github.com/Driiva/Driiva/internal/stopgo"
	"github.com/Driiva/Driiva/internal/timeutil"
)

// Store persists classification results keyed by trip id.
type Store struct {
	db    *driivadb.DB
	clock timeutil.Clock
}

// NewStore wraps an open database connection.
func NewStore(db *driivadb.DB, clock timeutil.Clock) *Store {
	return &Store{db: db, clock: clock}
}

// Save stores result under tripID, generating a uuid if tripID is empty,
// mirroring how the teacher assigns an identifier when the caller does not
// supply one. Returns the identifier actually used.
func (s *Store) Save(tripID string, result stopgo.ClassificationResult) (string, error) {
	if tripID == "" {
		tripID = uuid.New().String()
	}

	blob, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("tripstore: marshal classification result: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO trip_summary (trip_id, stop_count, trip_count, total_points, classified_at, result_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (trip_id) DO UPDATE SET
			stop_count = excluded.stop_count,
			trip_count = excluded.trip_count,
			total_points = excluded.total_points,
			classified_at = excluded.classified_at,
			result_json = excluded.result_json
	`, tripID, result.Summary.TotalStops, result.Summary.TotalTrips, result.Summary.TotalPoints,
		s.clock.Now().UTC().Format(timeLayout), blob)
	if err != nil {
		return "", fmt.Errorf("tripstore: save trip %s: %w", tripID, err)
	}
	return tripID, nil
}

// Summary is the lightweight row maintained alongside each stored result.
type Summary struct {
	TripID       string
	StopCount    int
	TripCount    int
	TotalPoints  int
	ClassifiedAt string
}

// GetSummary returns the summary row for tripID without deserialising the
// full classification result.
func (s *Store) GetSummary(tripID string) (Summary, error) {
	var sum Summary
	err := s.db.QueryRow(`
		SELECT trip_id, stop_count, trip_count, total_points, classified_at
		FROM trip_summary WHERE trip_id = ?
	`, tripID).Scan(&sum.TripID, &sum.StopCount, &sum.TripCount, &sum.TotalPoints, &sum.ClassifiedAt)
	if err == sql.ErrNoRows {
		return Summary{}, fmt.Errorf("tripstore: no summary for trip %s: %w", tripID, err)
	}
	if err != nil {
		return Summary{}, fmt.Errorf("tripstore: get summary for trip %s: %w", tripID, err)
	}
	return sum, nil
}

// Get retrieves the full classification result stored under tripID.
func (s *Store) Get(tripID string) (stopgo.ClassificationResult, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT result_json FROM trip_summary WHERE trip_id = ?`, tripID).Scan(&blob)
	if err == sql.ErrNoRows {
		return stopgo.ClassificationResult{}, fmt.Errorf("tripstore: no result for trip %s: %w", tripID, err)
	}
	if err != nil {
		return stopgo.ClassificationResult{}, fmt.Errorf("tripstore: get result for trip %s: %w", tripID, err)
	}

	var result stopgo.ClassificationResult
	if err := json.Unmarshal(blob, &result); err != nil {
		return stopgo.ClassificationResult{}, fmt.Errorf("tripstore: unmarshal result for trip %s: %w", tripID, err)
	}
	return result, nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
