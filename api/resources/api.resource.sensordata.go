// FilePath: api/resources/api.resource.sensordata.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/hubservice"
	"github.com/luxhub/twilight-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SensorDataHandlers encapsulates the twilight-switch HTTP handlers
type SensorDataHandlers struct {
	hubservice *hubservice.HubService
}

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

type readingRequest struct {
	Lux *float64 `json:"lux"`
}

type relayRequest struct {
	Status *bool `json:"status"`
}

// @Summary Receive a sensor reading
// @Description Record a lux reading, compute the relay decision and return it for the sensor to apply
// @Tags iot
// @Accept json
// @Produce json
// @Param reading body readingRequest true "Lux reading"
// @Success 201 {object} models.IngestResult
// @Failure 400 {object} errors.APIError
// @Router /iot/data [post]
func (h *SensorDataHandlers) ReceiveReading(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req readingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Lux == nil {
		respondWithError(w, errors.NewValidationError("lux is required", nil).WithRequestID(requestID))
		return
	}

	result, err := h.hubservice.ReceiveReading(r.Context(), *req.Lux)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// @Summary List sensor events
// @Description Get a paginated page of sensor events, newest first
// @Tags iot
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} models.EventPage
// @Router /iot/data [get]
func (h *SensorDataHandlers) ListData(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.PageQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid pagination parameters", err).WithRequestID(requestID))
		return
	}

	page, err := h.hubservice.ListEvents(r.Context(), query.Page, query.Limit)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

// @Summary Get the latest sensor event
// @Tags iot
// @Produce json
// @Success 200 {object} models.SensorEvent
// @Failure 404 {object} errors.APIError
// @Router /iot/latest [get]
func (h *SensorDataHandlers) Latest(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	event, err := h.hubservice.LatestEvent(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

// @Summary Get sensor events by date range
// @Description Events with start <= created_at <= end, newest first
// @Tags iot
// @Produce json
// @Param start query string true "Range start (RFC3339 or YYYY-MM-DD)"
// @Param end query string true "Range end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {array} models.SensorEvent
// @Failure 400 {object} errors.APIError
// @Router /iot/data/range [get]
func (h *SensorDataHandlers) Range(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.RangeQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid range parameters", err).WithRequestID(requestID))
		return
	}
	if query.Start == "" || query.End == "" {
		respondWithError(w, errors.NewValidationError("start and end parameters are required", nil).WithRequestID(requestID))
		return
	}

	start, err := models.ParseRangeTime(query.Start)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid start timestamp", err).WithRequestID(requestID))
		return
	}
	end, err := models.ParseRangeTime(query.End)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid end timestamp", err).WithRequestID(requestID))
		return
	}

	events, err := h.hubservice.EventsByRange(r.Context(), start, end)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(events),
		"data":  events,
	})
}

// @Summary Sensor statistics
// @Description Aggregates over the full event log plus relay and mode distributions
// @Tags iot
// @Produce json
// @Success 200 {object} models.SensorStatsReport
// @Router /iot/stats [get]
func (h *SensorDataHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	report, err := h.hubservice.Stats(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// @Summary Get current settings
// @Description Effective mode, threshold and manual relay state; defaults when no events exist
// @Tags iot
// @Produce json
// @Success 200 {object} models.Settings
// @Router /iot/settings [get]
func (h *SensorDataHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	settings, err := h.hubservice.CurrentSettings(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, settings)
}

// @Summary Update settings
// @Description Append a new event carrying the changed mode/threshold/manual state
// @Tags iot
// @Accept json
// @Produce json
// @Param settings body models.SettingsUpdate true "Partial settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} errors.APIError
// @Router /iot/settings [put]
// @Security BearerAuth
func (h *SensorDataHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var update models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	settings, err := h.hubservice.UpdateSettings(r.Context(), &update)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, settings)
}

// @Summary Manual relay control
// @Description Force the relay state; only allowed while in MANUAL mode
// @Tags iot
// @Accept json
// @Produce json
// @Param control body relayRequest true "Relay state"
// @Success 200 {object} models.SensorEvent
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /iot/relay [post]
// @Security BearerAuth
func (h *SensorDataHandlers) ControlRelay(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req relayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Status == nil {
		respondWithError(w, errors.NewValidationError("status parameter is required (true/false)", nil).WithRequestID(requestID))
		return
	}

	event, err := h.hubservice.ControlRelay(r.Context(), *req.Status)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

// @Summary Clear sensor history
// @Description Delete every event except the newest so current settings survive
// @Tags iot
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /iot/history [delete]
// @Security BearerAuth
func (h *SensorDataHandlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	deleted, err := h.hubservice.ClearHistory(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// Helper functions

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

// respondWithServiceError maps a service error to its HTTP response,
// wrapping unknown error values as internal errors.
func respondWithServiceError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("unexpected error", err).WithRequestID(requestID))
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func parsePathID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
