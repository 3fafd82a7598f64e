package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Driiva/Driiva/internal/api"
	"github.com/Driiva/Driiva/internal/config"
	driivadb "github.com/Driiva/Driiva/internal/db"
	"github.com/Driiva/Driiva/internal/refund"
	"github.com/Driiva/Driiva/internal/stopgo"
	"github.com/Driiva/Driiva/internal/testutil"
	"github.com/Driiva/Driiva/internal/timeutil"
	"github.com/Driiva/Driiva/internal/tripscore"
	"github.com/Driiva/Driiva/internal/tripstore"
)

func newTestServer(t *testing.T) *api.Server {
	t.Helper()
	d, err := driivadb.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	clock := timeutil.NewMockClock(time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC))
	cfg := config.MustLoadDefaultConfig()
	return api.NewServer(cfg, tripstore.NewStore(d, clock), refund.NewStore(d, clock), tripscore.NewStore(d, clock))
}

func TestHandleHealthz_ReturnsOK(t *testing.T) {
	s := newTestServer(t)
	req := testutil.NewTestRequest(http.MethodGet, "/healthz")
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
}

func TestHandleClassify_PersistsAndReturnsResult(t *testing.T) {
	s := newTestServer(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]stopgo.Sample, 60)
	for i := range samples {
		samples[i] = stopgo.Sample{Timestamp: base.Add(time.Duration(i) * time.Second), X: float64(i), Y: 0}
	}
	body, _ := json.Marshal(map[string]interface{}{"trip_id": "trip-1", "samples": samples})

	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "trip-1", resp["trip_id"])
}

func TestHandleClassify_RejectsWrongMethod(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/classify", nil)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleRefund_ReturnsComputedDiscount(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]interface{}{
		"driver_id": "driver-1", "period": "2026-06", "driver_score": 85, "base_premium": 10000,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/refund", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp refund.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.DiscountPct, 0.0)
}

func TestHandleTripScore_ReturnsBreakdownAndRollingAverage(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]interface{}{
		"driver_id": "driver-1", "trip_id": "trip-9",
		"counters": tripscore.EventCounters{HardBrakeCount: 1},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/tripscore", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "breakdown")
	assert.Contains(t, resp, "rolling_average")
}

func TestHandleGetTrip_MissingTripReturnsNotFound(t *testing.T) {
	s := newTestServer(t)
	req := testutil.NewTestRequest(http.MethodGet, "/api/trips/does-not-exist")
	rec := testutil.NewTestRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}

func TestHandleClassify_ConvertsSpeedToRequestedUnits(t *testing.T) {
	s := newTestServer(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]stopgo.Sample, 60)
	for i := range samples {
		samples[i] = stopgo.Sample{Timestamp: base.Add(time.Duration(i) * time.Second), X: float64(i) * 10, Y: 0}
	}
	body, _ := json.Marshal(map[string]interface{}{"trip_id": "trip-speed", "samples": samples})

	req := httptest.NewRequest(http.MethodPost, "/api/classify?units=kmph", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	result := resp["result"].(map[string]interface{})
	trips := result["trips"].([]interface{})
	require.NotEmpty(t, trips)
	firstTrip := trips[0].(map[string]interface{})
	assert.Greater(t, firstTrip["average_speed"].(float64), 20.0, "10 m/s converted to km/h should be well above the raw m/s figure")
}

func TestHandleClassify_RejectsInvalidUnitsParam(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/classify?units=furlongs", nil)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleClassify_RejectsInvalidTimezoneParam(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/classify?timezone=Mars/Olympus_Mons", nil)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
