package handlers

import (
	"net/http"

	"github.com/droidbay/catalog/cmd/catalog/service"
	"github.com/droidbay/catalog/common/logger"
	"github.com/labstack/echo/v4"
)

// AssistantHandler handles the conversational help route
type AssistantHandler struct {
	assistant *service.AssistantService
	log       *logger.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant *service.AssistantService, log *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		log:       log,
	}
}

// chatRequest is the chatbot body
type chatRequest struct {
	Query string `json:"query"`
}

// Chat answers a store question. This route always returns 200 with a
// displayable reply; upstream failures are absorbed by the fallback.
// POST /api/chatbot
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		// An unreadable body degrades to an empty query, not an error
		req.Query = ""
	}

	reply := h.assistant.Answer(c.Request().Context(), req.Query)

	return c.JSON(http.StatusOK, map[string]string{"response": reply})
}
