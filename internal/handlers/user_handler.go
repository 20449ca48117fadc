package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger, production bool) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger, production),
		service:     service,
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	var query services.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid query parameters"))
		return
	}

	resp, err := h.service.List(c.Request.Context(), &query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Users retrieved successfully", resp))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Getting user", "target_user_id", id)

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("User retrieved successfully", user))
}

// CreateUser is the admin variant of registration: the role is assignable.
func (h *UserHandler) CreateUser(c *gin.Context) {
	h.LogRequest(c, "Creating user")

	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload"))
		return
	}

	user, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, success("User created successfully", user))
}

// Profile returns the caller's own account with their ratings and stores.
func (h *UserHandler) Profile(c *gin.Context) {
	h.LogRequest(c, "Getting profile")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Profile retrieved successfully", profile))
}
