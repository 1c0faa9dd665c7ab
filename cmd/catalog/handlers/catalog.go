package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/droidbay/catalog/cmd/catalog/service"
	"github.com/droidbay/catalog/common/logger"
	"github.com/labstack/echo/v4"
)

// CatalogHandler handles the public catalog routes
type CatalogHandler struct {
	catalog *service.CatalogService
	log     *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     log,
	}
}

// ListApps returns the full catalog
// GET /api/apps
func (h *CatalogHandler) ListApps(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.List())
}

// GetApp returns a single app
// GET /api/apps/:id
func (h *CatalogHandler) GetApp(c echo.Context) error {
	app, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "App not found"})
	}
	return c.JSON(http.StatusOK, app)
}

// ListCategories returns the category list
// GET /api/categories
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Categories())
}

// searchRequest is the search body
type searchRequest struct {
	Query string `json:"query"`
}

// Search returns apps whose name contains the query
// POST /api/search
func (h *CatalogHandler) Search(c echo.Context) error {
	// Bind treats an absent body as a no-op, so reject it explicitly
	if c.Request().ContentLength == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
	}

	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
	}

	return c.JSON(http.StatusOK, h.catalog.Search(req.Query))
}

// DownloadArtifact streams an app's APK as an attachment
// GET /api/apps/:id/download
func (h *CatalogHandler) DownloadArtifact(c echo.Context) error {
	id := c.Param("id")

	rc, suggested, err := h.catalog.OpenArtifact(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "App not found"})
		case errors.Is(err, service.ErrNoArtifact):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "APK not available for this app"})
		case errors.Is(err, service.ErrArtifactGone):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "APK file not found on server"})
		default:
			h.log.Error("apk download failed", "app_id", id, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to download APK"})
		}
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, suggested))
	return c.Stream(http.StatusOK, "application/vnd.android.package-archive", rc)
}
