package routes

import (
	"github.com/droidbay/catalog/cmd/catalog/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterCatalogRoutes registers the public catalog routes
func RegisterCatalogRoutes(e *echo.Echo, h *handlers.CatalogHandler) {
	api := e.Group("/api")
	{
		api.GET("/apps", h.ListApps)                 // GET /api/apps
		api.GET("/apps/:id", h.GetApp)               // GET /api/apps/{id}
		api.GET("/apps/:id/download", h.DownloadArtifact) // GET /api/apps/{id}/download
		api.GET("/categories", h.ListCategories)     // GET /api/categories
		api.POST("/search", h.Search)                // POST /api/search
	}
}
