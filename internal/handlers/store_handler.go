package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
)

type StoreHandler struct {
	BaseHandler
	service services.StoreService
}

func NewStoreHandler(service services.StoreService, logger utils.Logger, production bool) *StoreHandler {
	return &StoreHandler{
		BaseHandler: NewBaseHandler(logger, production),
		service:     service,
	}
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	h.LogRequest(c, "Creating store")

	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload"))
		return
	}

	store, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, success("Store created successfully", store))
}

// ListStores is public; pagination, search and sorting ride on the query
// string.
func (h *StoreHandler) ListStores(c *gin.Context) {
	h.LogRequest(c, "Listing stores")

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

	c.JSON(http.StatusOK, success("Stores retrieved successfully", resp))
}

// GetStore is public; when the caller is authenticated the response also
// carries their own rating of the store.
func (h *StoreHandler) GetStore(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Getting store", "store_id", id)

	var callerID *uint
	if userID, ok := CurrentUserIDFromContext(c); ok {
		callerID = &userID
	}

	store, err := h.service.GetByID(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Store retrieved successfully", store))
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Updating store", "store_id", id)

	var req services.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload"))
		return
	}

	store, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Store updated successfully", store))
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Deleting store", "store_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Store deleted successfully", nil))
}
