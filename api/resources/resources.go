// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/luxhub/twilight-hub/internal/hubservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth          *AuthHandlers
	SensorData    *SensorDataHandlers
	Users         *UserHandlers
	Devices       *DeviceHandlers
	Notifications *NotificationHandlers
	HealthCheck   func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		Auth:          &AuthHandlers{hubservice: svc},
		SensorData:    &SensorDataHandlers{hubservice: svc},
		Users:         &UserHandlers{hubservice: svc},
		Devices:       &DeviceHandlers{hubservice: svc},
		Notifications: &NotificationHandlers{hubservice: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}
