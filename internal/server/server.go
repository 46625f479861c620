// FilePath: internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/luxhub/twilight-hub/api"
	"github.com/luxhub/twilight-hub/api/middleware"
	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/config"
	"github.com/luxhub/twilight-hub/internal/database"
	"github.com/luxhub/twilight-hub/internal/hubservice"
	"github.com/luxhub/twilight-hub/internal/monitoring"
	"github.com/luxhub/twilight-hub/internal/repository/postgres"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
	db         database.DB
	denylist   *auth.RedisDenylist
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
	}
}

// Start initializes services and begins listening for requests
func (s *Server) Start() error {
	if err := s.initializeHubService(); err != nil {
		return err
	}
	s.monitoring = monitoring.NewService(monitoring.Config{
		LogLevel: s.config.Monitoring.LogLevel,
	})

	// Wire service events into monitoring
	s.setupEventHandlers()

	authMiddleware := middleware.NewAuthMiddleware(
		s.hubservice.Tokens,
		s.hubservice.RevokedTokens,
		s.hubservice.Users,
	)

	router := api.NewRouter(s.hubservice, authMiddleware)
	router.SetHealthCheck(s.handleHealth())

	handler := handlers.CombinedLoggingHandler(os.Stdout, handlers.CORS(
		handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(router))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Errorf("[Server] Error closing database: %v", err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth reports process version plus database and Redis reachability
func (s *Server) handleHealth() http.HandlerFunc {
	type dependencyStatus struct {
		Database string `json:"database"`
		Redis    string `json:"redis"`
	}
	type healthResponse struct {
		Status       string           `json:"status"`
		Version      string           `json:"version"`
		Dependencies dependencyStatus `json:"dependencies"`
		Events       map[string]int64 `json:"events"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status:  "ok",
			Version: nuts.GetVersion(),
			Dependencies: dependencyStatus{
				Database: "ok",
				Redis:    "ok",
			},
			Events: s.monitoring.Snapshot(),
		}

		if err := s.db.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Dependencies.Database = "unreachable"
		}
		if err := s.denylist.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Dependencies.Redis = "unreachable"
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func (s *Server) setupEventHandlers() {
	s.hubservice.OnEvent(hubservice.EventRelaySwitched, func(state string) {
		nuts.L.Infof("[Relay] Switched %s", state)
		s.monitoring.RecordEvent("relay_switch", map[string]string{
			"state": state,
		})
	})

	s.hubservice.Cleanup.OnCleanup("history.cleared", func(count string) {
		nuts.L.Infof("[Cleanup] Sensor history cleared, %s rows removed", count)
		s.monitoring.RecordEvent("history_clear", map[string]string{
			"rows": count,
		})
	})

	s.hubservice.Cleanup.OnCleanup(hubservice.EventUserDeleted, func(id string) {
		nuts.L.Infof("[Cleanup] User %s and all associated data deleted", id)
		s.monitoring.RecordEvent("user_deletion", map[string]string{
			"user_id": id,
		})
	})
}

// initializeHubService connects the backing stores and assembles the hub service
func (s *Server) initializeHubService() error {
	db, err := database.NewPostgresDB(s.config.Database.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	s.db = db

	sensorEvents, err := postgres.NewSensorEventRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize sensor event repository: %w", err)
	}
	users, err := postgres.NewUserRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize user repository: %w", err)
	}
	devices, err := postgres.NewDeviceRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize device repository: %w", err)
	}
	notifications, err := postgres.NewNotificationRepository(db)
	if err != nil {
		return fmt.Errorf("failed to initialize notification repository: %w", err)
	}

	denylist, err := auth.NewRedisDenylist(s.config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.denylist = denylist

	tokens := auth.NewTokenManager(s.config.Auth.JWTSecret, s.config.Auth.TokenTTL)

	s.hubservice = hubservice.New(
		sensorEvents,
		users,
		devices,
		notifications,
		tokens,
		denylist,
		s.config.Auth.BcryptCost,
	)

	return s.hubservice.Validate()
}
