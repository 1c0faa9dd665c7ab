package handlers

import (
	"errors"
	"net/http"

	"github.com/droidbay/catalog/cmd/catalog/service"
	"github.com/droidbay/catalog/common/logger"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	auth *service.AuthService
	log  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log,
	}
}

// credentialsRequest is the register/login body
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Register creates an account
// POST /api/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		case errors.Is(err, service.ErrConflict):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username already exists"})
		default:
			h.log.Error("registration failed", "username", req.Username, "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register user"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

// Login verifies credentials
// POST /api/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
	}

	user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user.Public(),
	})
}
