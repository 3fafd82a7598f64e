// Package api exposes the classifier, refund calculator, and trip scoring
// service over HTTP. It is a thin transport layer: every handler delegates
// to internal/stopgo, internal/refund, or internal/tripscore and never
// duplicates their logic.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/Driiva/Driiva/internal/config"
	"github.com/Driiva/Driiva/internal/httputil"
	"github.com/Driiva/Driiva/internal/refund"
	"github.com/Driiva/Driiva/internal/stopgo"
	"github.com/Driiva/Driiva/internal/tripscore"
	"github.com/Driiva/Driiva/internal/tripstore"
	"github.com/Driiva/Driiva/internal/units"
)

// Server wires the HTTP transport to the domain packages. All fields are
// required; use NewServer rather than constructing directly.
type Server struct {
	cfg     *config.TuningConfig
	trips   *tripstore.Store
	refunds *refund.Store
	scores  *tripscore.Store
	mux     *http.ServeMux
}

// NewServer builds a Server over already-opened stores and a tuning config.
func NewServer(cfg *config.TuningConfig, trips *tripstore.Store, refunds *refund.Store, scores *tripscore.Store) *Server {
	return &Server{cfg: cfg, trips: trips, refunds: refunds, scores: scores}
}

// ServeMux returns the server's handler tree, building it on first call.
func (s *Server) ServeMux() *http.ServeMux {
	if s.mux != nil {
		return s.mux
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/api/classify", s.handleClassify)
	s.mux.HandleFunc("/api/trips/", s.handleGetTrip)
	s.mux.HandleFunc("/api/refund", s.handleRefund)
	s.mux.HandleFunc("/api/tripscore", s.handleTripScore)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	return s.mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{"status": "ok"})
}

// parseDisplayParams reads the optional ?units= and ?timezone= query
// parameters shared by the classify and trip-lookup handlers, validating
// each against internal/units the way the radar API validates them before
// ever touching a stored metric.
func parseDisplayParams(r *http.Request) (targetUnits, targetTimezone string, err error) {
	targetUnits = units.MPS
	if u := r.URL.Query().Get("units"); u != "" {
		if !units.IsValid(u) {
			return "", "", fmt.Errorf("invalid 'units' parameter, must be one of: %s", units.GetValidUnitsString())
		}
		targetUnits = u
	}

	targetTimezone = "UTC"
	if tz := r.URL.Query().Get("timezone"); tz != "" {
		if !units.IsTimezoneValid(tz) {
			return "", "", fmt.Errorf("invalid 'timezone' parameter, must be a valid IANA zone name")
		}
		targetTimezone = tz
	}
	return targetUnits, targetTimezone, nil
}

type classifyRequest struct {
	TripID  string          `json:"trip_id"`
	Samples []stopgo.Sample `json:"samples"`
}

// stopView is a stop interval rendered for display: timestamps localised to
// the requested timezone, formatted as RFC3339 rather than Go's default
// time.Time wire format.
type stopView struct {
	Start           string  `json:"start"`
	Stop            string  `json:"stop"`
	DurationSeconds float64 `json:"duration_seconds"`
	CentroidX       float64 `json:"centroid_x"`
	CentroidY       float64 `json:"centroid_y"`
}

// tripView is a trip interval rendered for display, with its average speed
// converted to the caller's requested units (m/s, mph, or km/h).
type tripView struct {
	Start           string  `json:"start"`
	Stop            string  `json:"stop"`
	DurationSeconds float64 `json:"duration_seconds"`
	AverageSpeed    float64 `json:"average_speed"`
}

type classifyResponse struct {
	Summary stopgo.Summary `json:"summary"`
	Stops   []stopView     `json:"stops"`
	Trips   []tripView     `json:"trips"`
}

// newClassifyResponse builds the display view of a classification result,
// localising every timestamp to targetTimezone and every speed to
// targetUnits. The persisted result always stays in UTC/m-per-second;
// both /api/classify and /api/trips/{id} convert it only at the transport
// boundary.
func newClassifyResponse(result stopgo.ClassificationResult, targetUnits, targetTimezone string) (classifyResponse, error) {
	resp := classifyResponse{Summary: result.Summary}

	for _, s := range result.Stops {
		start, err := units.ConvertTime(s.Start, targetTimezone)
		if err != nil {
			return classifyResponse{}, fmt.Errorf("convert stop start: %w", err)
		}
		stop, err := units.ConvertTime(s.Stop, targetTimezone)
		if err != nil {
			return classifyResponse{}, fmt.Errorf("convert stop end: %w", err)
		}
		resp.Stops = append(resp.Stops, stopView{
			Start:           start.Format(time.RFC3339),
			Stop:            stop.Format(time.RFC3339),
			DurationSeconds: s.DurationSeconds,
			CentroidX:       s.CentroidX,
			CentroidY:       s.CentroidY,
		})
	}

	for i, tr := range result.Trips {
		start, err := units.ConvertTime(tr.Start, targetTimezone)
		if err != nil {
			return classifyResponse{}, fmt.Errorf("convert trip start: %w", err)
		}
		stop, err := units.ConvertTime(tr.Stop, targetTimezone)
		if err != nil {
			return classifyResponse{}, fmt.Errorf("convert trip end: %w", err)
		}

		var speedMPS float64
		if tr.DurationSeconds > 0 && i < len(result.TripSamples) {
			speedMPS = tripPathLength(result.TripSamples[i]) / tr.DurationSeconds
		}

		resp.Trips = append(resp.Trips, tripView{
			Start:           start.Format(time.RFC3339),
			Stop:            stop.Format(time.RFC3339),
			DurationSeconds: tr.DurationSeconds,
			AverageSpeed:    units.ConvertSpeed(speedMPS, targetUnits),
		})
	}

	return resp, nil
}

// tripPathLength sums consecutive-sample distances within one trip, giving
// the travelled distance used to derive its average speed.
func tripPathLength(samples []stopgo.LabelledSample) float64 {
	var length float64
	for i := 1; i < len(samples); i++ {
		length += math.Hypot(samples[i].X-samples[i-1].X, samples[i].Y-samples[i-1].Y)
	}
	return length
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	targetUnits, targetTimezone, err := parseDisplayParams(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	result := stopgo.Classify(req.Samples, s.cfg.StopGoConfig())
	if !result.Summary.Success {
		httputil.WriteJSONError(w, http.StatusUnprocessableEntity, result.Summary.Error)
		return
	}

	tripID, err := s.trips.Save(req.TripID, result)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to persist result: %v", err))
		return
	}

	view, err := newClassifyResponse(result, targetUnits, targetTimezone)
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"trip_id": tripID,
		"result":  view,
	})
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	tripID := r.URL.Path[len("/api/trips/"):]
	if tripID == "" {
		httputil.BadRequest(w, "trip id is required")
		return
	}

	targetUnits, targetTimezone, err := parseDisplayParams(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	result, err := s.trips.Get(tripID)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}

	view, err := newClassifyResponse(result, targetUnits, targetTimezone)
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, view)
}

type refundRequest struct {
	DriverID    string  `json:"driver_id"`
	Period      string  `json:"period"`
	DriverScore float64 `json:"driver_score"`
	BasePremium int64   `json:"base_premium"`
}

func (s *Server) handleRefund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	result, err := refund.Compute(req.DriverID, req.Period, req.DriverScore, req.BasePremium, s.cfg.GetRefundTiers())
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := s.refunds.Persist(result); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to persist refund: %v", err))
		return
	}

	httputil.WriteJSONOK(w, result)
}

type tripScoreRequest struct {
	DriverID string                  `json:"driver_id"`
	TripID   string                  `json:"trip_id"`
	Counters tripscore.EventCounters `json:"counters"`
}

func (s *Server) handleTripScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req tripScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	breakdown := tripscore.Compute(req.Counters, s.cfg)
	if err := s.scores.Record(req.DriverID, req.TripID, req.Counters, breakdown); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to record trip score: %v", err))
		return
	}

	avg, count, err := s.scores.RollingAverage(req.DriverID, s.cfg.GetTripScoreWindowDays())
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to compute rolling average: %v", err))
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"breakdown":          breakdown,
		"rolling_average":    avg,
		"rolling_trip_count": count,
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status, and duration for every
// request the server handles.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)

		log.Printf("%s %s %d %s", r.Method, r.URL.Path, lrw.statusCode, time.Since(start))
	})
}
