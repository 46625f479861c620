// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/cleanup"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	SensorEvents  repository.SensorEventRepository
	Users         repository.UserRepository
	Devices       repository.DeviceRepository
	Notifications repository.NotificationRepository
	Tokens        *auth.TokenManager
	RevokedTokens auth.Denylist
	Cleanup       *cleanup.CleanupService
	BcryptCost    int

	events *nuts.EventEmitter
}

// New creates a new HubService instance
func New(
	sensorEvents repository.SensorEventRepository,
	users repository.UserRepository,
	devices repository.DeviceRepository,
	notifications repository.NotificationRepository,
	tokens *auth.TokenManager,
	revokedTokens auth.Denylist,
	bcryptCost int,
) *HubService {
	events := nuts.NewEventEmitter()
	svc := &HubService{
		SensorEvents:  sensorEvents,
		Users:         users,
		Devices:       devices,
		Notifications: notifications,
		Tokens:        tokens,
		RevokedTokens: revokedTokens,
		BcryptCost:    bcryptCost,
		events:        events,
	}
	svc.Cleanup = cleanup.New(sensorEvents, users, notifications, events)
	return svc
}

// OnEvent registers a callback for service events such as relay switches
func (s *HubService) OnEvent(event string, handler func(detail string)) {
	s.events.On(event, "hub_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if detail, ok := args[0].(string); ok {
				handler(detail)
			}
		}
	})
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.SensorEvents == nil {
		return ErrMissingRepository("sensorEvents")
	}
	if s.Users == nil {
		return ErrMissingRepository("users")
	}
	if s.Devices == nil {
		return ErrMissingRepository("devices")
	}
	if s.Notifications == nil {
		return ErrMissingRepository("notifications")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
