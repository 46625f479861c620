// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/luxhub/twilight-hub/api/middleware"
	"github.com/luxhub/twilight-hub/api/resources"
	"github.com/luxhub/twilight-hub/internal/hubservice"
	"github.com/luxhub/twilight-hub/internal/models"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.AuthMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, auth *middleware.AuthMiddleware) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      auth,
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", r.resources.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", r.resources.Auth.Register).Methods(http.MethodPost)

	// Sensor node and dashboard polling surface; the node carries no
	// credentials and reads the relay decision from the response body
	iot := api.PathPrefix("/iot").Subrouter()
	iot.HandleFunc("/data", r.resources.SensorData.ReceiveReading).Methods(http.MethodPost)
	iot.HandleFunc("/ping", r.resources.SensorData.ReceiveReading).Methods(http.MethodPost) // legacy firmware alias
	iot.HandleFunc("/data", r.resources.SensorData.ListData).Methods(http.MethodGet)
	iot.HandleFunc("/data/range", r.resources.SensorData.Range).Methods(http.MethodGet)
	iot.HandleFunc("/latest", r.resources.SensorData.Latest).Methods(http.MethodGet)
	iot.HandleFunc("/stats", r.resources.SensorData.Stats).Methods(http.MethodGet)
	iot.HandleFunc("/settings", r.resources.SensorData.GetSettings).Methods(http.MethodGet)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	protected.HandleFunc("/auth/logout", r.resources.Auth.Logout).Methods(http.MethodPost)

	// Control surface: any authenticated operator
	protected.HandleFunc("/iot/settings", r.resources.SensorData.UpdateSettings).Methods(http.MethodPut)
	protected.HandleFunc("/iot/relay", r.resources.SensorData.ControlRelay).Methods(http.MethodPost)
	protected.HandleFunc("/iot/history", r.resources.SensorData.ClearHistory).Methods(http.MethodDelete)

	// Devices: read for any authenticated user, mutations admin-only
	protected.HandleFunc("/devices", r.resources.Devices.ListDevices).Methods(http.MethodGet)
	protected.HandleFunc("/devices/{id}", r.resources.Devices.GetDevice).Methods(http.MethodGet)

	// Notifications, scoped to the caller
	protected.HandleFunc("/notifications", r.resources.Notifications.ListNotifications).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", r.resources.Notifications.MarkAllRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{id}/read", r.resources.Notifications.MarkRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{id}", r.resources.Notifications.DeleteNotification).Methods(http.MethodDelete)

	// Admin routes
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(r.auth.RequireRoles(models.RoleAdmin))

	admin.HandleFunc("/users", r.resources.Users.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users", r.resources.Users.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", r.resources.Users.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.resources.Users.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.resources.Users.DeleteUser).Methods(http.MethodDelete)

	admin.HandleFunc("/devices", r.resources.Devices.CreateDevice).Methods(http.MethodPost)
	admin.HandleFunc("/devices/{id}", r.resources.Devices.UpdateDevice).Methods(http.MethodPut)
	admin.HandleFunc("/devices/{id}", r.resources.Devices.DeleteDevice).Methods(http.MethodDelete)

	admin.HandleFunc("/notifications", r.resources.Notifications.CreateNotification).Methods(http.MethodPost)
}

// SetHealthCheck must be called before the router serves traffic
func (r *Router) SetHealthCheck(h func(w http.ResponseWriter, req *http.Request)) {
	r.resources.SetHealthCheck(h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
