package routes

import (
	"github.com/droidbay/catalog/cmd/catalog/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterAuthRoutes registers registration and login routes
func RegisterAuthRoutes(e *echo.Echo, h *handlers.AuthHandler) {
	e.POST("/api/register", h.Register) // POST /api/register
	e.POST("/api/login", h.Login)       // POST /api/login
}
