// FilePath: api/resources/api.resource.notifications.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/hubservice"
	"github.com/luxhub/twilight-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// NotificationHandlers encapsulates the per-user notification handlers.
// All operations are scoped to the authenticated caller.
type NotificationHandlers struct {
	hubservice *hubservice.HubService
}

func (h *NotificationHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	caller := auth.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	notifications, err := h.hubservice.ListNotifications(r.Context(), caller.ID)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandlers) CreateNotification(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input models.NotificationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	notification, err := h.hubservice.CreateNotification(r.Context(), &input)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	caller := auth.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	id, err := parsePathID(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid notification id", err).WithRequestID(requestID))
		return
	}

	notification, err := h.hubservice.MarkNotificationRead(r.Context(), id, caller.ID)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, notification)
}

func (h *NotificationHandlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	caller := auth.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.MarkAllNotificationsRead(r.Context(), caller.ID); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "all read"})
}

func (h *NotificationHandlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	caller := auth.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	id, err := parsePathID(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid notification id", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.DeleteNotification(r.Context(), id, caller.ID); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
