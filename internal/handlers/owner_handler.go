package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
)

type OwnerHandler struct {
	BaseHandler
	service services.OwnerService
}

func NewOwnerHandler(service services.OwnerService, logger utils.Logger, production bool) *OwnerHandler {
	return &OwnerHandler{
		BaseHandler: NewBaseHandler(logger, production),
		service:     service,
	}
}

func (h *OwnerHandler) Dashboard(c *gin.Context) {
	h.LogRequest(c, "Getting owner dashboard")

	ownerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Dashboard retrieved successfully", dashboard))
}

// StoreRatings returns the ratings of one of the caller's stores. A store
// that exists but belongs to someone else 404s like a missing one.
func (h *OwnerHandler) StoreRatings(c *gin.Context) {
	storeID := h.parseIDParam(c, "storeId")
	if storeID == 0 {
		return
	}
	h.LogRequest(c, "Getting store ratings", "store_id", storeID)

	ownerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.service.StoreRatings(c.Request.Context(), ownerID, storeID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Store ratings retrieved successfully", resp))
}
