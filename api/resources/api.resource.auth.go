// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/hubservice"
	"github.com/luxhub/twilight-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers encapsulates login, registration and logout
type AuthHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Email and password"
// @Success 200 {object} models.AuthResult
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	result, err := h.hubservice.Login(r.Context(), &creds)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserInput true "Account details"
// @Success 201 {object} models.AuthResult
// @Failure 409 {object} errors.APIError
// @Router /auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input models.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	result, err := h.hubservice.Register(r.Context(), &input)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// Logout revokes the presented token until it would have expired anyway.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	caller := auth.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, errors.NewAuthError("no user context found", nil).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.Logout(r.Context(), caller.TokenID, caller.ExpiresAt); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
