// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/luxhub/twilight-hub/internal/database"
	"github.com/luxhub/twilight-hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// SensorEventRepository is the append-only event log. Rows are never
// updated in place; the newest row (created_at desc, id desc) doubles as
// the current configuration.
type SensorEventRepository interface {
	database.Repository
	Append(ctx context.Context, event *models.SensorEvent) error
	Latest(ctx context.Context) (*models.SensorEvent, error)
	List(ctx context.Context, page, limit int) ([]*models.SensorEvent, int64, error)
	ByDateRange(ctx context.Context, start, end time.Time) ([]*models.SensorEvent, error)
	ClearAllButLatest(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*models.SensorStatsReport, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines the interface for user account storage
type UserRepository interface {
	database.Repository
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.User, error)
}

// DeviceRepository defines the interface for sensor node registrations
type DeviceRepository interface {
	database.Repository
	Create(ctx context.Context, device *models.Device) error
	Get(ctx context.Context, id int64) (*models.Device, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Device, error)
}

// NotificationRepository defines the interface for per-user notifications
type NotificationRepository interface {
	database.Repository
	Create(ctx context.Context, notification *models.Notification) error
	GetForUser(ctx context.Context, id, userID int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteByUser(ctx context.Context, userID int64, tx database.Transaction) error
}
