package routes

import (
	"github.com/droidbay/catalog/cmd/catalog/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterDeveloperRoutes registers the developer console routes
func RegisterDeveloperRoutes(e *echo.Echo, h *handlers.DeveloperHandler) {
	dev := e.Group("/api/developer")
	{
		dev.GET("/apps", h.ListApps)                       // GET /api/developer/apps
		dev.POST("/apps", h.CreateApp)                     // POST /api/developer/apps
		dev.PUT("/apps/:id", h.UpdateApp)                  // PUT /api/developer/apps/{id}
		dev.POST("/apps/:id/upload-apk", h.UploadArtifact) // POST /api/developer/apps/{id}/upload-apk
		dev.DELETE("/apps/:id", h.DeleteApp)               // DELETE /api/developer/apps/{id}
	}
}
