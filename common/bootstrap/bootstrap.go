package bootstrap

import (
	"context"
	"fmt"

	"github.com/droidbay/catalog/common/config"
	"github.com/droidbay/catalog/common/docstore"
	"github.com/droidbay/catalog/common/logger"
	"github.com/droidbay/catalog/common/telemetry"
	"github.com/redis/go-redis/v9"
)

// Setup initializes all service components
// This is the main entry point for all services
func Setup(ctx context.Context, serviceName string, opts ...Option) (*Components, error) {
	// Apply options
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	components := &Components{
		cleanupFuncs: make([]func() error, 0),
	}

	// 1. Load configuration
	var err error
	if options.customConfig != nil {
		components.Config = options.customConfig
	} else {
		components.Config, err = config.Load(serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// 2. Initialize logger
	if options.customLogger != nil {
		components.Logger = options.customLogger
	} else {
		components.Logger = logger.New(
			components.Config.Service.LogLevel,
			components.Config.Service.LogFormat,
		)
	}

	// Every line from this service carries its name
	components.Logger = components.Logger.WithFields(map[string]any{
		"service": serviceName,
	})

	components.Logger.Info("initializing service",
		"environment", components.Config.Service.Environment,
	)

	// 3. Initialize document store (if not skipped)
	if !options.skipStore {
		if options.customStore != nil {
			components.Store = options.customStore
		} else {
			components.Logger.Info("initializing document store",
				"backend", components.Config.Store.Backend,
			)

			components.Store, err = newStore(ctx, components.Config, components.Logger)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize document store: %w", err)
			}
		}

		// Register cleanup
		components.addCleanup(func() error {
			components.Logger.Info("closing document store")
			return components.Store.Close()
		})
	}

	// 4. Initialize telemetry (if not skipped)
	if !options.skipTelemetry && components.Config.Telemetry.EnablePprof {
		components.Logger.Info("initializing telemetry")
		components.Telemetry = telemetry.New(
			components.Config.Telemetry.PprofPort,
			components.Logger,
		)

		if err := components.Telemetry.Start(ctx); err != nil {
			components.Logger.Warn("failed to start telemetry", "error", err)
			// Don't fail startup if telemetry fails
		}
	}

	components.Logger.Info("service initialization complete",
		"store", components.Store != nil,
		"telemetry", components.Telemetry != nil,
	)

	return components, nil
}

// newStore creates the document store backend selected by config
func newStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (docstore.Store, error) {
	switch cfg.Store.Backend {
	case "file":
		return docstore.NewFileStore(cfg.Store.DataDir, log)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       0,
		})
		return docstore.NewRedisStore(ctx, client, log)
	case "postgres":
		return docstore.NewPostgresStore(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
