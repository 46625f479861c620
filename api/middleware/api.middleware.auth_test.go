// FilePath: api/middleware/api.middleware.auth_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/database"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users map[int64]*models.User
}

func (r *stubUserRepo) BeginTx(context.Context) (database.Transaction, error) {
	return nil, errors.NewInternalError("not supported", nil)
}

func (r *stubUserRepo) Create(context.Context, *models.User) error { return nil }

func (r *stubUserRepo) Get(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found", nil)
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (r *stubUserRepo) Update(context.Context, *models.User) error { return nil }
func (r *stubUserRepo) Delete(context.Context, int64) error        { return nil }
func (r *stubUserRepo) List(context.Context) ([]*models.User, error) {
	return nil, nil
}

type stubDenylist struct {
	revoked map[string]bool
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	d.revoked[tokenID] = true
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return d.revoked[tokenID], nil
}

type middlewareFixture struct {
	mw       *AuthMiddleware
	tokens   *auth.TokenManager
	denylist *stubDenylist
	users    *stubUserRepo
}

func newMiddlewareFixture() *middlewareFixture {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	denylist := &stubDenylist{revoked: map[string]bool{}}
	users := &stubUserRepo{users: map[int64]*models.User{
		1: {ID: 1, Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin},
		2: {ID: 2, Name: "Operator", Email: "op@example.com", Role: models.RoleUser},
	}}
	return &middlewareFixture{
		mw:       NewAuthMiddleware(tokens, denylist, users),
		tokens:   tokens,
		denylist: denylist,
		users:    users,
	}
}

func captureUser(t *testing.T, target **auth.UserContext) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*target = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateAttachesUser(t *testing.T) {
	f := newMiddlewareFixture()

	token, err := f.tokens.Issue(2, "op@example.com", models.RoleUser)
	require.NoError(t, err)

	var captured *auth.UserContext
	handler := f.mw.Authenticate(captureUser(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, int64(2), captured.ID)
	assert.Equal(t, models.RoleUser, captured.Role)
	assert.NotEmpty(t, captured.TokenID)
	assert.False(t, captured.ExpiresAt.IsZero())
}

func TestAuthenticateMissingToken(t *testing.T) {
	f := newMiddlewareFixture()
	handler := f.mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsRevokedToken(t *testing.T) {
	f := newMiddlewareFixture()

	token, err := f.tokens.Issue(2, "op@example.com", models.RoleUser)
	require.NoError(t, err)

	claims, err := f.tokens.Parse(token)
	require.NoError(t, err)
	require.NoError(t, f.denylist.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	handler := f.mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsDeletedAccount(t *testing.T) {
	f := newMiddlewareFixture()

	token, err := f.tokens.Issue(999, "ghost@example.com", models.RoleUser)
	require.NoError(t, err)

	handler := f.mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	f := newMiddlewareFixture()

	tests := []struct {
		name     string
		userID   int64
		role     string
		required []string
		want     int
	}{
		{"admin passes admin gate", 1, models.RoleAdmin, []string{models.RoleAdmin}, http.StatusOK},
		{"user blocked by admin gate", 2, models.RoleUser, []string{models.RoleAdmin}, http.StatusForbidden},
		{"wildcard admits anyone", 2, models.RoleUser, []string{"*"}, http.StatusOK},
		{"empty requirement admits anyone", 2, models.RoleUser, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := f.tokens.Issue(tt.userID, "x@example.com", tt.role)
			require.NoError(t, err)

			handler := f.mw.Authenticate(f.mw.RequireRoles(tt.required...)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				})))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRolesWithoutAuthentication(t *testing.T) {
	f := newMiddlewareFixture()

	handler := f.mw.RequireRoles(models.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be reached")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
