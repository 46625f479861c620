// FilePath: internal/hubservice/hubservice.auth_test.go
package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, f *fixture, email, role string) *models.User {
	t.Helper()
	user, err := f.svc.CreateUser(context.Background(), &models.UserInput{
		Name:     "Test User",
		Email:    email,
		Password: "hunter22",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "op@example.com", "")

	result, err := f.svc.Login(context.Background(), &models.Credentials{
		Email:    "op@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := f.svc.Tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture()
	registerTestUser(t, f, "op@example.com", "")

	_, badPassword := f.svc.Login(context.Background(), &models.Credentials{
		Email:    "op@example.com",
		Password: "wrong",
	})
	require.Error(t, badPassword)

	_, unknownEmail := f.svc.Login(context.Background(), &models.Credentials{
		Email:    "ghost@example.com",
		Password: "hunter22",
	})
	require.Error(t, unknownEmail)

	assert.Equal(t, badPassword.Error(), unknownEmail.Error())
}

func TestLoginRequiresCredentials(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), &models.Credentials{Email: "op@example.com"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterIssuesToken(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Register(context.Background(), &models.UserInput{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleUser, result.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	registerTestUser(t, f, "dup@example.com", "")

	_, err := f.svc.Register(context.Background(), &models.UserInput{
		Name:     "Other",
		Email:    "dup@example.com",
		Password: "hunter22",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.svc.Logout(ctx, "tok_abc123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	revoked, err := f.denylist.IsRevoked(ctx, "tok_abc123")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutRequiresTokenID(t *testing.T) {
	f := newFixture()

	err := f.svc.Logout(context.Background(), "", time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input models.UserInput
	}{
		{"missing name", models.UserInput{Email: "a@b.c", Password: "x"}},
		{"missing email", models.UserInput{Name: "A", Password: "x"}},
		{"missing password", models.UserInput{Name: "A", Email: "a@b.c"}},
		{"bad role", models.UserInput{Name: "A", Email: "a@b.c", Password: "x", Role: "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateUser(ctx, &tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	f := newFixture()

	user := registerTestUser(t, f, "hash@example.com", "")
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestGetUserHidesPasswordHash(t *testing.T) {
	f := newFixture()
	created := registerTestUser(t, f, "filter@example.com", "")

	ctx := auth.WithUser(context.Background(), &auth.UserContext{
		ID:   created.ID,
		Role: models.RoleUser,
	})

	user, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash, "no API role may read the hash")
	assert.Equal(t, created.ID, user.ID, "public fields survive the filter")
	assert.Equal(t, created.Name, user.Name)
	assert.Equal(t, created.Email, user.Email)
	assert.Equal(t, created.Role, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	target := registerTestUser(t, f, "target@example.com", "")

	userCtx := auth.WithUser(context.Background(), &auth.UserContext{ID: 99, Role: models.RoleUser})
	updated, err := f.svc.UpdateUser(userCtx, target.ID, &models.UserInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.RoleUser, updated.Role, "unset role keeps its value")

	adminCtx := auth.WithUser(context.Background(), &auth.UserContext{ID: 99, Role: models.RoleAdmin})
	updated, err = f.svc.UpdateUser(adminCtx, target.ID, &models.UserInput{Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUpdateUserChangesPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := registerTestUser(t, f, "rotate@example.com", "")

	userCtx := auth.WithUser(ctx, &auth.UserContext{ID: 99, Role: models.RoleUser})
	_, err := f.svc.UpdateUser(userCtx, target.ID, &models.UserInput{Password: "new-passphrase"})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, &models.Credentials{
		Email:    "rotate@example.com",
		Password: "hunter22",
	})
	require.Error(t, err, "old password no longer works")

	result, err := f.svc.Login(ctx, &models.Credentials{
		Email:    "rotate@example.com",
		Password: "new-passphrase",
	})
	require.NoError(t, err)
	assert.Equal(t, target.ID, result.User.ID)
}

func TestDeleteUserCascadesNotifications(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := registerTestUser(t, f, "bye@example.com", "")

	_, err := f.svc.CreateNotification(ctx, &models.NotificationInput{
		UserID:  target.ID,
		Title:   "Relay switched",
		Message: "Relay turned ON at dusk",
	})
	require.NoError(t, err)

	adminCtx := auth.WithUser(ctx, &auth.UserContext{ID: 99, Role: models.RoleAdmin})
	require.NoError(t, f.svc.DeleteUser(adminCtx, target.ID))

	_, err = f.svc.GetUser(ctx, target.ID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	remaining, err := f.svc.ListNotifications(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteUserSelfDeleteRejected(t *testing.T) {
	f := newFixture()
	target := registerTestUser(t, f, "self@example.com", "admin")

	ctx := auth.WithUser(context.Background(), &auth.UserContext{ID: target.ID, Role: models.RoleAdmin})
	err := f.svc.DeleteUser(ctx, target.ID)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
