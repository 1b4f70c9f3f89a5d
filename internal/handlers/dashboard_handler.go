package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jjss-seva/registration-service/internal/services"
	"github.com/jjss-seva/registration-service/internal/utils"
)

// DashboardHandler serves the admin listing, stats and export endpoints.
type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns registrations matching the query filters, newest first.
func (h *DashboardHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing registrations")

	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats returns the dashboard counters.
func (h *DashboardHandler) Stats(c *gin.Context) {
	h.LogRequest(c, "Getting registration stats")

	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV streams the filtered listing as a CSV download.
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	h.LogRequest(c, "Exporting registrations as CSV")

	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	file, err := h.service.ExportCSV(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.writeDownload(c, file)
}

// ExportXLSX streams the filtered listing as a spreadsheet download.
func (h *DashboardHandler) ExportXLSX(c *gin.Context) {
	h.LogRequest(c, "Exporting registrations as XLSX")

	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	file, err := h.service.ExportXLSX(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.writeDownload(c, file)
}

func (h *DashboardHandler) bindFilters(c *gin.Context) (*services.ListFilters, bool) {
	var filters services.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid filter parameters",
			Details: err.Error(),
		})
		return nil, false
	}
	return &filters, true
}

func (h *DashboardHandler) writeDownload(c *gin.Context, file *services.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
