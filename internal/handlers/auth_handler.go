package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger, production bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger, production),
		service:     service,
	}
}

// Register creates a USER account and signs the caller in.
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload"))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, success("User registered successfully", resp))
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in user")

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload"))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Login successful", resp))
}

// UpdatePassword changes the caller's own password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	h.LogRequest(c, "Updating password")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload"))
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Password updated successfully", nil))
}
