package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/wordvote/wordvote/internal/dependencies/clock"
	"github.com/wordvote/wordvote/internal/dependencies/random"
	"github.com/wordvote/wordvote/internal/dependencies/scheduler"
	"github.com/wordvote/wordvote/internal/services/codes"
	"github.com/wordvote/wordvote/internal/services/registry"
	"github.com/wordvote/wordvote/internal/services/session"
	"github.com/wordvote/wordvote/internal/services/tally"
	"github.com/wordvote/wordvote/internal/storage"
	"github.com/wordvote/wordvote/internal/storage/memory"
	redisstorage "github.com/wordvote/wordvote/internal/storage/redis"
	"github.com/wordvote/wordvote/internal/words"
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
	Clock     clock.Clock
	Random    random.Random
	Scheduler scheduler.Scheduler

	// Services
	Codes             *codes.Generator
	Registry          *registry.Service
	Tally             *tally.Service
	SessionController *session.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionConfig holds session lifecycle settings (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// RegistryConfig holds player registry settings (optional)
	// If zero value, defaults to registry.DefaultConfig()
	RegistryConfig registry.Config
	// Blocklist is the set of disallowed normalized words (optional)
	// If nil, defaults to words.DefaultBlocklist
	Blocklist []string
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
	sched := scheduler.New()

	blocklist := cfg.Blocklist
	if blocklist == nil {
		blocklist = words.DefaultBlocklist
	}

	return newWithDependencies(store, clk, rnd, sched, blocklist, cfg.SessionConfig, cfg.RegistryConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sched scheduler.Scheduler,
	blocklist []string,
	sessionCfg session.Config,
	registryCfg registry.Config,
	logger *slog.Logger,
) *App {
	// Create services
	gen := codes.New(rnd)
	registryService := registry.New(store, gen, clk, registryCfg, logger)
	tallyService := tally.New(store, logger)
	sessionController := session.NewController(
		store, registryService, tallyService, gen,
		words.NewBlocklist(blocklist),
		clk, sched, sessionCfg, logger,
	)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Scheduler:         sched,
		Codes:             gen,
		Registry:          registryService,
		Tally:             tallyService,
		SessionController: sessionController,
	}
}
