package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gridspace-io/gridspace/internal/dependencies/clock"
	"github.com/gridspace-io/gridspace/internal/dependencies/random"
	"github.com/gridspace-io/gridspace/internal/services/admin"
	"github.com/gridspace-io/gridspace/internal/services/auth"
	"github.com/gridspace-io/gridspace/internal/services/space"
	"github.com/gridspace-io/gridspace/internal/storage"
	"github.com/gridspace-io/gridspace/internal/storage/memory"
	redisstorage "github.com/gridspace-io/gridspace/internal/storage/redis"
	"github.com/gridspace-io/gridspace/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService  *auth.Service
	SpaceService *space.Service
	AdminService *admin.Service

	// Realtime
	Registry *ws.Registry
	Gateway  *ws.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service
	// TokenDuration defaults to 24h if zero; Secret must be set by the caller
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	authService := auth.New(store, clk, rnd, authCfg, logger)
	spaceService := space.New(store, clk, rnd, logger)
	adminService := admin.New(store, clk, rnd, logger)

	// Realtime gateway
	registry := ws.NewRegistry(logger)
	gateway := ws.NewGateway(registry, authService, spaceService, authService, rnd, logger)

	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		AuthService:  authService,
		SpaceService: spaceService,
		AdminService: adminService,
		Registry:     registry,
		Gateway:      gateway,
	}
}
