package container

import (
	"context"
	"fmt"

	"github.com/droidbay/catalog/cmd/catalog/handlers"
	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/cmd/catalog/service"
	"github.com/droidbay/catalog/common/bootstrap"
	"github.com/droidbay/catalog/common/clients"
	"github.com/droidbay/catalog/common/ratelimit"
	"github.com/redis/go-redis/v9"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components

	// Repositories
	AppRepo      *repository.AppRepository
	CategoryRepo *repository.CategoryRepository
	UserRepo     *repository.UserRepository

	// Services
	ArtifactStore    *service.ArtifactStore
	CatalogService   *service.CatalogService
	AssistantService *service.AssistantService
	AuthService      *service.AuthService

	// Handlers
	CatalogHandler   *handlers.CatalogHandler
	DeveloperHandler *handlers.DeveloperHandler
	AssistantHandler *handlers.AssistantHandler
	AuthHandler      *handlers.AuthHandler

	// Optional: global API rate limiter (requires Redis)
	RateLimiter *ratelimit.RateLimiter
}

// NewContainer initializes all services and repositories once
func NewContainer(ctx context.Context, components *bootstrap.Components) (*Container, error) {
	cfg := components.Config
	log := components.Logger

	// Initialize repositories (each loads its collection up front)
	appRepo, err := repository.NewAppRepository(ctx, components.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app repository: %w", err)
	}

	categoryRepo, err := repository.NewCategoryRepository(ctx, components.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize category repository: %w", err)
	}

	userRepo, err := repository.NewUserRepository(ctx, components.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user repository: %w", err)
	}

	// Initialize services (bottom-up: dependencies first)
	artifactStore, err := service.NewArtifactStore(cfg.Uploads.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact store: %w", err)
	}

	catalogService := service.NewCatalogService(appRepo, categoryRepo, artifactStore, log)

	ollamaClient := clients.NewOllamaClient(
		cfg.Assistant.OllamaURL,
		cfg.Assistant.Model,
		cfg.Assistant.Timeout,
		log,
	)
	assistantService := service.NewAssistantService(
		appRepo,
		categoryRepo,
		ollamaClient,
		cfg.Assistant.Timeout,
		log,
	)

	authService := service.NewAuthService(userRepo, log)

	// Optional global rate limiter
	var limiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       0,
		})
		limiter = ratelimit.NewRateLimiter(redisClient, log)
	}

	return &Container{
		Components:       components,
		AppRepo:          appRepo,
		CategoryRepo:     categoryRepo,
		UserRepo:         userRepo,
		ArtifactStore:    artifactStore,
		CatalogService:   catalogService,
		AssistantService: assistantService,
		AuthService:      authService,
		CatalogHandler:   handlers.NewCatalogHandler(catalogService, log),
		DeveloperHandler: handlers.NewDeveloperHandler(catalogService, log),
		AssistantHandler: handlers.NewAssistantHandler(assistantService, log),
		AuthHandler:      handlers.NewAuthHandler(authService, log),
		RateLimiter:      limiter,
	}, nil
}
