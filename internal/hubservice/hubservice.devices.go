// FilePath: internal/hubservice/hubservice.devices.go
package hubservice

import (
	"context"

	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreateDevice registers a new sensor node.
func (s *HubService) CreateDevice(ctx context.Context, input *models.DeviceInput) (*models.Device, error) {
	if input.Name == "" || input.DeviceID == "" {
		return nil, errors.NewValidationError("name and device_id are required", nil)
	}

	status := input.Status
	if status == "" {
		status = models.DeviceStatusActive
	}
	if status != models.DeviceStatusActive && status != models.DeviceStatusInactive {
		return nil, errors.NewValidationError("status must be active or inactive", nil)
	}

	// reject duplicates up front; the unique index still backstops races
	if _, err := s.Devices.GetByDeviceID(ctx, input.DeviceID); err == nil {
		return nil, errors.NewConflictError("device id is already registered", nil)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	device := &models.Device{
		Name:     input.Name,
		DeviceID: input.DeviceID,
		Location: input.Location,
		Status:   status,
	}

	if err := s.Devices.Create(ctx, device); err != nil {
		return nil, err
	}

	nuts.L.Infof("[DeviceService] Registered device %s (%s)", device.DeviceID, device.Name)
	return device, nil
}

// GetDevice retrieves one device by row id.
func (s *HubService) GetDevice(ctx context.Context, id int64) (*models.Device, error) {
	return s.Devices.Get(ctx, id)
}

// ListDevices returns all registered devices, newest first.
func (s *HubService) ListDevices(ctx context.Context) ([]*models.Device, error) {
	return s.Devices.List(ctx)
}

// UpdateDevice applies a partial update; unset fields keep their values.
func (s *HubService) UpdateDevice(ctx context.Context, id int64, input *models.DeviceInput) (*models.Device, error) {
	device, err := s.Devices.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		device.Name = input.Name
	}
	if input.DeviceID != "" {
		device.DeviceID = input.DeviceID
	}
	if input.Location != nil {
		device.Location = input.Location
	}
	if input.Status != "" {
		if input.Status != models.DeviceStatusActive && input.Status != models.DeviceStatusInactive {
			return nil, errors.NewValidationError("status must be active or inactive", nil)
		}
		device.Status = input.Status
	}

	if err := s.Devices.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// DeleteDevice removes a device registration.
func (s *HubService) DeleteDevice(ctx context.Context, id int64) error {
	return s.Devices.Delete(ctx, id)
}
