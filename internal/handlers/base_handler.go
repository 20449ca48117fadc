package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
	"github.com/storely/store-rating-service/internal/validator"
)

// BaseHandler carries the cross-cutting pieces every handler needs: the
// request-scoped logger and the shared service-error mapping.
type BaseHandler struct {
	logger     utils.Logger
	production bool
}

func NewBaseHandler(logger utils.Logger, production bool) BaseHandler {
	return BaseHandler{logger: logger, production: production}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// parseIDParam reads a positive integer path parameter; 0 means it already
// answered the request with a 400.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, failure("Invalid "+name+" parameter"))
		return 0
	}
	return uint(id)
}

// currentUserID reads the authenticated user's id set by the auth middleware.
func (h *BaseHandler) currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, failure("Authentication required"))
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, failure("Authentication required"))
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to HTTP statuses. Every handler
// funnels its failures through here so the envelope stays uniform.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	var perr *services.PermissionError

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, failure("Validation failed", verrs.Messages()...))
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, failure(err.Error()))
	case errors.As(err, &perr):
		c.JSON(http.StatusForbidden, failure("You do not have permission to perform this action"))
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrStoreNotFound),
		errors.Is(err, services.ErrRatingNotFound):
		c.JSON(http.StatusNotFound, failure(err.Error()))
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, failure(err.Error()))
	default:
		h.LogError(c, err, "unexpected service error")
		message := "Internal server error"
		if !h.production {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, failure(message))
	}
}
