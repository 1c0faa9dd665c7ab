package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/cmd/catalog/service"
	"github.com/droidbay/catalog/common/logger"
	"github.com/labstack/echo/v4"
)

// DeveloperHandler handles developer-side catalog mutations.
// These routes are unauthenticated for now, matching the public contract.
type DeveloperHandler struct {
	catalog *service.CatalogService
	log     *logger.Logger
}

// NewDeveloperHandler creates a new developer handler
func NewDeveloperHandler(catalog *service.CatalogService, log *logger.Logger) *DeveloperHandler {
	return &DeveloperHandler{
		catalog: catalog,
		log:     log,
	}
}

// ListApps returns the full catalog for the developer console
// GET /api/developer/apps
func (h *DeveloperHandler) ListApps(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.List())
}

// CreateApp creates a catalog entry; the full field set is required
// POST /api/developer/apps
func (h *DeveloperHandler) CreateApp(c echo.Context) error {
	var input models.AppInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
	}

	app, err := h.catalog.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.log.Error("app create failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save app"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "App uploaded successfully",
		"app":     app,
	})
}

// UpdateApp replaces an app's metadata; partial updates are not supported
// PUT /api/developer/apps/:id
func (h *DeveloperHandler) UpdateApp(c echo.Context) error {
	id := c.Param("id")

	var input models.AppInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
	}

	app, err := h.catalog.Update(c.Request().Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "App not found"})
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.log.Error("app update failed", "app_id", id, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save app"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "App updated successfully",
		"app":     app,
	})
}

// UploadArtifact attaches an APK to an app via multipart upload
// POST /api/developer/apps/:id/upload-apk
func (h *DeveloperHandler) UploadArtifact(c echo.Context) error {
	id := c.Param("id")

	// The app lookup comes before any file validation
	if _, err := h.catalog.Get(id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "App not found"})
	}

	fileHeader, err := c.FormFile("apk")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No APK file provided"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.log.Error("apk open failed", "app_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("Failed to save APK: %v", err)})
	}
	defer src.Close()

	_, stored, err := h.catalog.AttachArtifact(c.Request().Context(), id, fileHeader.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "App not found"})
		case errors.Is(err, service.ErrEmptyFilename):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No APK file selected"})
		case errors.Is(err, service.ErrBadExtension):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "File must be an APK (.apk extension)"})
		default:
			h.log.Error("apk upload failed", "app_id", id, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("Failed to save APK: %v", err)})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "APK uploaded successfully",
		"filename": stored,
		"app_id":   id,
	})
}

// DeleteApp removes a catalog entry
// DELETE /api/developer/apps/:id
func (h *DeveloperHandler) DeleteApp(c echo.Context) error {
	id := c.Param("id")

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "App not found"})
		}
		h.log.Error("app delete failed", "app_id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete app"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "App deleted successfully"})
}
