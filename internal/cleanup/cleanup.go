// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/luxhub/twilight-hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates the destructive operations: clearing the
// sensor event log and cascading user deletions. Each successful operation
// emits an event for monitoring.
type CleanupService struct {
	sensorEvents  repository.SensorEventRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	events        *nuts.EventEmitter
}

// New creates a new CleanupService sharing the service-wide event emitter
func New(
	sensorEvents repository.SensorEventRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	events *nuts.EventEmitter,
) *CleanupService {
	return &CleanupService{
		sensorEvents:  sensorEvents,
		users:         users,
		notifications: notifications,
		events:        events,
	}
}

// ClearSensorHistory deletes every event except the newest one, so the
// current configuration survives the clear. Returns the number of rows
// removed; zero on an empty or single-row log.
func (s *CleanupService) ClearSensorHistory(ctx context.Context) (int64, error) {
	deleted, err := s.sensorEvents.ClearAllButLatest(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear sensor history: %w", err)
	}

	s.events.Emit("history.cleared", strconv.FormatInt(deleted, 10))
	return deleted, nil
}

// DeleteUser deletes a user and all their notifications in one transaction.
func (s *CleanupService) DeleteUser(ctx context.Context, userID int64) error {
	tx, err := s.users.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if err := s.notifications.DeleteByUser(ctx, userID, tx); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.events.Emit("user.deleted", strconv.FormatInt(userID, 10))
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(detail string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if detail, ok := args[0].(string); ok {
				handler(detail)
			}
		}
	})
}
