// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/repository"
)

// AuthMiddleware verifies bearer tokens, rejects revoked ones and attaches
// the caller's account to the request context.
type AuthMiddleware struct {
	tokens   *auth.TokenManager
	denylist auth.Denylist
	users    repository.UserRepository
}

func NewAuthMiddleware(tokens *auth.TokenManager, denylist auth.Denylist, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		denylist: denylist,
		users:    users,
	}
}

// Authenticate validates the token and adds user info to context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			if auth.IsExpired(err) {
				handleError(w, errors.NewAuthError("token expired, please log in again", err))
				return
			}
			handleError(w, errors.NewAuthError("invalid token", err))
			return
		}

		revoked, err := m.denylist.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			handleError(w, errors.NewInternalError("failed to check token revocation", err))
			return
		}
		if revoked {
			handleError(w, errors.NewAuthError("token has been revoked", nil))
			return
		}

		// the account may have been deleted since the token was issued
		user, err := m.users.Get(r.Context(), claims.UserID)
		if err != nil {
			handleError(w, errors.NewAuthError("user not found", err))
			return
		}

		userContext := &auth.UserContext{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			TokenID:   claims.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		}

		ctx := auth.WithUser(r.Context(), userContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles middleware ensures user has one of the required roles
func (m *AuthMiddleware) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.UserFromContext(r.Context())
			if user == nil {
				handleError(w, errors.NewAuthError("no user context found", nil))
				return
			}

			if !hasRequiredRole(user.Role, roles) {
				handleError(w, errors.NewAuthorizationError("insufficient permissions", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Helper functions

func extractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	parts := strings.Split(bearerToken, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func hasRequiredRole(userRole string, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	for _, required := range requiredRoles {
		if required == "*" || required == userRole {
			return true
		}
	}
	return false
}

func handleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if apiErr, ok := err.(*errors.APIError); ok {
		w.WriteHeader(apiErr.Code)
		json.NewEncoder(w).Encode(apiErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errors.NewInternalError("internal server error", err))
}
