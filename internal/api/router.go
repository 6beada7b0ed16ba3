package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gridspace-io/gridspace/internal/api/handler"
	"github.com/gridspace-io/gridspace/internal/api/middleware"
	basemiddleware "github.com/gridspace-io/gridspace/internal/middleware"
	"github.com/gridspace-io/gridspace/internal/services/admin"
	"github.com/gridspace-io/gridspace/internal/services/auth"
	"github.com/gridspace-io/gridspace/internal/services/space"
	"github.com/gridspace-io/gridspace/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	SpaceService *space.Service
	AdminService *admin.Service
	Gateway      *ws.Gateway
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.AdminService)
	spaceHandler := handler.NewSpaceHandler(cfg.SpaceService)
	adminHandler := handler.NewAdminHandler(cfg.AdminService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := basemiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required)
	api.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/signin", authHandler.Signin).Methods(http.MethodPost)

	// Catalog listings (no auth, read-only)
	api.HandleFunc("/avatars", userHandler.ListAvatars).Methods(http.MethodGet)
	api.HandleFunc("/elements", userHandler.ListElements).Methods(http.MethodGet)

	// User routes (all require auth)
	user := api.PathPrefix("/user").Subrouter()
	user.Use(authMiddleware)
	user.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)
	user.HandleFunc("/metadata", userHandler.UpdateMetadata).Methods(http.MethodPost)
	user.HandleFunc("/metadata/bulk", userHandler.BulkMetadata).Methods(http.MethodGet)

	// Space routes (all require auth)
	spaces := api.PathPrefix("/space").Subrouter()
	spaces.Use(authMiddleware)
	spaces.HandleFunc("", spaceHandler.Create).Methods(http.MethodPost)
	spaces.HandleFunc("/all", spaceHandler.ListMine).Methods(http.MethodGet)
	spaces.HandleFunc("/element", spaceHandler.AddElement).Methods(http.MethodPost)
	spaces.HandleFunc("/element", spaceHandler.DeleteElement).Methods(http.MethodDelete)
	spaces.HandleFunc("/{id}", spaceHandler.Get).Methods(http.MethodGet)
	spaces.HandleFunc("/{id}", spaceHandler.Delete).Methods(http.MethodDelete)

	// Admin routes (require auth + admin role)
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMiddleware)
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.HandleFunc("/element", adminHandler.CreateElement).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/element/{id}", adminHandler.UpdateElement).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/avatar", adminHandler.CreateAvatar).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/map", adminHandler.CreateMap).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Realtime gateway (token auth happens inside the join frame)
	r.Handle("/ws", cfg.Gateway)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
