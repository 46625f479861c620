// FilePath: internal/models/models.device.go
package models

import "time"

const (
	DeviceStatusActive   = "active"
	DeviceStatusInactive = "inactive"
)

// Device is a registered sensor node (e.g. the ESP32 light sensor).
type Device struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	DeviceID  string    `json:"device_id" db:"device_id"`
	Location  *string   `json:"location" db:"location"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DeviceInput is the write shape for device create/update requests.
type DeviceInput struct {
	Name     string  `json:"name"`
	DeviceID string  `json:"device_id"`
	Location *string `json:"location"`
	Status   string  `json:"status"`
}
