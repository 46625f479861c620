// FilePath: internal/hubservice/hubservice.users.go
package hubservice

import (
	"context"

	"github.com/itsatony/struccy"
	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/crypto/bcrypt"
)

// EventUserDeleted fires after a user and their notifications are removed.
const EventUserDeleted = "user.deleted"

// CreateUser creates a new account with a bcrypt-hashed password.
func (s *HubService) CreateUser(ctx context.Context, input *models.UserInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, errors.NewValidationError("name, email and password are required", nil)
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, errors.NewValidationError("role must be admin or user", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.BcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Created user %d (%s)", user.ID, user.Role)
	return user, nil
}

// GetUser retrieves a user with role-based field filtering; the password
// hash is readable by no API role.
func (s *HubService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := auth.RolesFromContext(ctx)
	filteredMap, err := struccy.StructToMapFieldsWithReadXS(user, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter user fields", err)
	}
	filtered := &models.User{}
	if _, err := struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles); err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to user struct", err)
	}

	return filtered, nil
}

// ListUsers returns all accounts, newest first.
func (s *HubService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Users.List(ctx)
}

// UpdateUser applies a partial update with role-gated field access: the
// role field is only writable by admins, enforced through struct tags.
func (s *HubService) UpdateUser(ctx context.Context, id int64, input *models.UserInput) (*models.User, error) {
	existing, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	incoming := &models.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}

	roles := auth.RolesFromContext(ctx)
	updatedFields, _, err := struccy.UpdateStructFields(existing, incoming, roles, true, true)
	if err != nil {
		return nil, errors.NewAuthorizationError("unauthorized field update", err)
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.BcryptCost)
		if err != nil {
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		existing.PasswordHash = string(hash)
		updatedFields["PasswordHash"] = "rehashed"
	}

	if err := s.Users.Update(ctx, existing); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Updated user %d, fields changed: %v", id, updatedFields)
	return existing, nil
}

// DeleteUser removes an account and its notifications. Callers cannot
// delete their own account.
func (s *HubService) DeleteUser(ctx context.Context, id int64) error {
	if caller := auth.UserFromContext(ctx); caller != nil && caller.ID == id {
		return errors.NewValidationError("cannot delete your own account", nil)
	}

	if _, err := s.Users.Get(ctx, id); err != nil {
		return err
	}

	return s.Cleanup.DeleteUser(ctx, id)
}
