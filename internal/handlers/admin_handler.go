package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/services"
	"github.com/storely/store-rating-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	service services.AdminService
}

func NewAdminHandler(service services.AdminService, logger utils.Logger, production bool) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger, production),
		service:     service,
	}
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	h.LogRequest(c, "Getting admin dashboard stats")

	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, success("Dashboard statistics retrieved successfully", stats))
}

// ExportStores streams an xlsx workbook of every store with its aggregates.
func (h *AdminHandler) ExportStores(c *gin.Context) {
	h.LogRequest(c, "Exporting stores")

	data, err := h.service.ExportStores(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("stores-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
