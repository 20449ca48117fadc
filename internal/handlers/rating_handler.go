package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
)

type RatingHandler struct {
	BaseHandler
	service services.RatingService
}

func NewRatingHandler(service services.RatingService, logger utils.Logger, production bool) *RatingHandler {
	return &RatingHandler{
		BaseHandler: NewBaseHandler(logger, production),
		service:     service,
	}
}

// SubmitRating creates the caller's rating for a store, or replaces the
// previous one when they already rated it.
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	h.LogRequest(c, "Submitting rating")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, failure("Invalid request payload"))
		return
	}

	rating, err := h.service.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Rating submitted successfully", rating))
}

func (h *RatingHandler) MyRatings(c *gin.Context) {
	h.LogRequest(c, "Listing caller's ratings")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	ratings, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Ratings retrieved successfully", ratings))
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Deleting rating", "rating_id", id)

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Rating deleted successfully", nil))
}
