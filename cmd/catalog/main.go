package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/droidbay/catalog/cmd/catalog/container"
	"github.com/droidbay/catalog/cmd/catalog/routes"
	"github.com/droidbay/catalog/common/bootstrap"
	custommw "github.com/droidbay/catalog/common/middleware"
	"github.com/droidbay/catalog/common/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	ctx := context.Background()

	// Bootstrap common components (config, logger, store, telemetry)
	components, err := bootstrap.Setup(ctx, "catalog")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap catalog: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(ctx, components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	// Initialize Echo server
	e := setupEcho()

	// Setup middleware
	setupMiddleware(e, serviceContainer)

	// Setup health check
	setupHealthCheck(e)

	// Register all routes
	registerRoutes(e, serviceContainer)

	// Serve the web client for everything that is not an API route
	setupStatic(e, components.Config.Service.StaticDir)

	// Start server with graceful shutdown
	srv := server.New("catalog", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo, c *container.Container) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	// Oversized uploads are rejected at the edge, before any handler runs
	e.Use(middleware.BodyLimit(c.Components.Config.Uploads.MaxBodySize))

	if c.RateLimiter != nil {
		cfg := c.Components.Config.RateLimit
		e.Use(custommw.GlobalRateLimit(c.RateLimiter, cfg.PerMinute))
		if cfg.PerClient > 0 {
			e.Use(custommw.ClientRateLimit(c.RateLimiter, cfg.PerClient))
		}
	}
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"service": "catalog",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	routes.RegisterCatalogRoutes(e, serviceContainer.CatalogHandler)
	routes.RegisterDeveloperRoutes(e, serviceContainer.DeveloperHandler)
	routes.RegisterAssistantRoutes(e, serviceContainer.AssistantHandler)
	routes.RegisterAuthRoutes(e, serviceContainer.AuthHandler)
}

// setupStatic serves built client assets with an index.html fallback so the
// app shell handles client-side routing
func setupStatic(e *echo.Echo, staticDir string) {
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  staticDir,
		Index: "index.html",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api") || p == "/health"
		},
	}))
}
