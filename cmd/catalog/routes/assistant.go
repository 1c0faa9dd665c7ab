package routes

import (
	"github.com/droidbay/catalog/cmd/catalog/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterAssistantRoutes registers the conversational help route
func RegisterAssistantRoutes(e *echo.Echo, h *handlers.AssistantHandler) {
	e.POST("/api/chatbot", h.Chat) // POST /api/chatbot
}
