// FilePath: internal/repository/postgres/postgres.notifications.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/luxhub/twilight-hub/internal/database"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
)

type NotificationRepo struct {
	PostgresBaseRepo
}

func NewNotificationRepository(db database.DB) (*NotificationRepo, error) {
	repo := &NotificationRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *NotificationRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(200) NOT NULL,
			message TEXT NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'info',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize notifications schema", err)
	}
	return nil
}

func (r *NotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, is_read)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, is_read, created_at`

	err := r.db.GetDB().QueryRowxContext(ctx, query,
		notification.UserID, notification.Title, notification.Message, notification.Type,
	).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
	if err != nil {
		return errors.NewDatabaseError("failed to create notification", err)
	}
	return nil
}

// GetForUser scopes the lookup to the owning user; another user's
// notification behaves like a missing one.
func (r *NotificationRepo) GetForUser(ctx context.Context, id, userID int64) (*models.Notification, error) {
	notification := &models.Notification{}
	query := `SELECT * FROM notifications WHERE id = $1 AND user_id = $2`

	err := r.db.GetDB().GetContext(ctx, notification, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("notification not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get notification", err)
	}
	return notification, nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	notifications := []*models.Notification{}
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	if err := r.db.GetDB().SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, errors.NewDatabaseError("failed to list notifications", err)
	}
	return notifications, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, id, userID)
	if err != nil {
		return errors.NewDatabaseError("failed to mark notification read", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("notification not found", nil)
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`

	if _, err := r.db.GetDB().ExecContext(ctx, query, userID); err != nil {
		return errors.NewDatabaseError("failed to mark notifications read", err)
	}
	return nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.GetDB().ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete notification", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("notification not found", nil)
	}
	return nil
}

// DeleteByUser removes every notification of a user, inside the caller's
// transaction when one is supplied (user cascade delete).
func (r *NotificationRepo) DeleteByUser(ctx context.Context, userID int64, tx database.Transaction) error {
	query := `DELETE FROM notifications WHERE user_id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, userID)
	} else {
		_, err = r.db.GetDB().ExecContext(ctx, query, userID)
	}
	if err != nil {
		return errors.NewDatabaseError("failed to delete notifications for user", err)
	}
	return nil
}
