// FilePath: internal/auth/context.go
package auth

import (
	"context"
	"time"
)

// UserContext is the authenticated caller attached to each request.
type UserContext struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

type contextKey string

const userContextKey contextKey = "user"

// WithUser attaches the authenticated caller to the context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated caller, or nil.
func UserFromContext(ctx context.Context) *UserContext {
	user, _ := ctx.Value(userContextKey).(*UserContext)
	return user
}

// RolesFromContext returns the caller's roles for field-level access checks.
func RolesFromContext(ctx context.Context) []string {
	if user := UserFromContext(ctx); user != nil {
		return []string{user.Role}
	}
	return nil
}
