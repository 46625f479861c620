// FilePath: internal/hubservice/hubservice.notifications.go
package hubservice

import (
	"context"

	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
)

// CreateNotification creates a message for a specific user.
func (s *HubService) CreateNotification(ctx context.Context, input *models.NotificationInput) (*models.Notification, error) {
	if input.UserID == 0 || input.Title == "" || input.Message == "" {
		return nil, errors.NewValidationError("user_id, title and message are required", nil)
	}

	notificationType := input.Type
	if notificationType == "" {
		notificationType = "info"
	}

	// reject unknown recipients up front instead of relying on the fk
	if _, err := s.Users.Get(ctx, input.UserID); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    notificationType,
	}

	if err := s.Notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListNotifications returns the caller's notifications, newest first.
func (s *HubService) ListNotifications(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.Notifications.ListByUser(ctx, userID)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (s *HubService) MarkNotificationRead(ctx context.Context, id, userID int64) (*models.Notification, error) {
	if err := s.Notifications.MarkRead(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.Notifications.GetForUser(ctx, id, userID)
}

// MarkAllNotificationsRead flags all of the caller's notifications as read.
func (s *HubService) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	return s.Notifications.MarkAllRead(ctx, userID)
}

// DeleteNotification removes one of the caller's notifications.
func (s *HubService) DeleteNotification(ctx context.Context, id, userID int64) error {
	return s.Notifications.Delete(ctx, id, userID)
}
