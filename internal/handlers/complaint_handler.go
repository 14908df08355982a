package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

type ComplaintHandler struct {
	BaseHandler
	complaintService services.ComplaintService
}

func NewComplaintHandler(complaintService services.ComplaintService, logger utils.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		BaseHandler:      NewBaseHandler(logger),
		complaintService: complaintService,
	}
}

// CreateComplaint files a complaint for the caller
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	var req services.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	complaint, err := h.complaintService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondValidationErrors(c, verrs)
			return
		}
		h.LogError(c, err, "Failed to create complaint")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to create complaint",
		})
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

// GetMyComplaints lists the caller's complaints
func (h *ComplaintHandler) GetMyComplaints(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	complaints, err := h.complaintService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Failed to list own complaints")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list complaints",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "total": len(complaints)})
}

// ListComplaints lists complaints for staff review
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	filters := repositories.ComplaintFilters{Limit: 10}

	if size, err := strconv.Atoi(c.DefaultQuery("size", "10")); err == nil && size > 0 && size <= 100 {
		filters.Limit = size
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 1 {
		filters.Offset = (page - 1) * filters.Limit
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ComplaintStatus(raw)
		filters.Status = &status
	}

	resp, err := h.complaintService.List(c.Request.Context(), filters)
	if err != nil {
		h.LogError(c, err, "Failed to list complaints")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list complaints",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResolveComplaint updates a complaint's status
func (h *ComplaintHandler) ResolveComplaint(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid complaint id",
		})
		return
	}

	var req services.ResolveComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Resolving complaint", "complaint_id", id, "status", req.Status)

	complaint, err := h.complaintService.Resolve(c.Request.Context(), id, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondValidationErrors(c, verrs)
			return
		}
		if errors.Is(err, services.ErrComplaintNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "complaint not found",
			})
			return
		}
		h.LogError(c, err, "Failed to resolve complaint", "complaint_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to resolve complaint",
		})
		return
	}

	c.JSON(http.StatusOK, complaint)
}
