package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
)

// AdminHandler exposes the staff back-office operations that do not fit
// a single domain entity.
type AdminHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewAdminHandler(exportService services.ExportService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportApplications streams the filtered applications as an xlsx workbook
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	filters := parseApplicationFilters(c)
	// Exports are unpaginated unless the caller asks otherwise.
	if c.Query("size") == "" {
		filters.Limit = 0
		filters.Offset = 0
	}

	h.LogRequest(c, "Exporting applications")

	data, err := h.exportService.ExportApplications(c.Request.Context(), filters)
	if err != nil {
		h.LogError(c, err, "Failed to export applications")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to export applications",
		})
		return
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
