// FilePath: internal/hubservice/hubservice.auth.go
package hubservice

import (
	"context"
	"time"

	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies credentials and issues an access token. Bad email and bad
// password return the same error so accounts cannot be enumerated.
func (s *HubService) Login(ctx context.Context, creds *models.Credentials) (*models.AuthResult, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, errors.NewValidationError("email and password are required", nil)
	}

	user, err := s.Users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewAuthError("invalid email or password", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, errors.NewAuthError("invalid email or password", nil)
	}

	token, err := s.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	nuts.L.Infof("[AuthService] User %d logged in", user.ID)
	return &models.AuthResult{Token: token, User: user}, nil
}

// Register creates an account and logs it in.
func (s *HubService) Register(ctx context.Context, input *models.UserInput) (*models.AuthResult, error) {
	user, err := s.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}

	token, err := s.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	return &models.AuthResult{Token: token, User: user}, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *HubService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.NewValidationError("token has no id", nil)
	}
	if err := s.RevokedTokens.Revoke(ctx, tokenID, expiresAt); err != nil {
		return errors.NewInternalError("failed to revoke token", err)
	}
	nuts.L.Infof("[AuthService] Token %s revoked", tokenID)
	return nil
}
