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

type ApplicationHandler struct {
	BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        NewBaseHandler(logger),
		applicationService: applicationService,
	}
}

// CreateApplication submits a housing application for the caller
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	var req services.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting application", "user_id", userID, "student_type", req.StudentType)

	app, err := h.applicationService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondValidationErrors(c, verrs)
			return
		}
		h.LogError(c, err, "Failed to submit application")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to submit application",
		})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GetMyApplications lists the caller's applications
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	apps, err := h.applicationService.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Failed to list own applications")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list applications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
}

// GetApplication returns a single application, ownership enforced
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid application id",
		})
		return
	}

	userID, _ := GetUserIDFromContext(c)
	role, _ := GetUserRoleFromContext(c)

	app, err := h.applicationService.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "application not found",
			})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "you may only view your own applications",
			})
		default:
			h.LogError(c, err, "Failed to get application", "application_id", id)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "failed to get application",
			})
		}
		return
	}

	c.JSON(http.StatusOK, app)
}

// ListApplications lists applications for staff review
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	filters := parseApplicationFilters(c)

	resp, err := h.applicationService.List(c.Request.Context(), filters)
	if err != nil {
		h.LogError(c, err, "Failed to list applications")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list applications",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateApplicationStatus moves an application through the review flow
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid application id",
		})
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating application status", "application_id", id, "status", req.Status)

	app, err := h.applicationService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondValidationErrors(c, verrs)
			return
		}
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "application not found",
			})
		case errors.Is(err, services.ErrInvalidStatusTransition):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "conflict",
				Message: err.Error(),
			})
		default:
			h.LogError(c, err, "Failed to update application status", "application_id", id)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "failed to update application status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, app)
}

// ===== HELPERS =====

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseApplicationFilters(c *gin.Context) repositories.ApplicationFilters {
	filters := repositories.ApplicationFilters{
		Limit:     10,
		Offset:    0,
		SortBy:    c.DefaultQuery("sort_by", "submitted_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if size, err := strconv.Atoi(c.DefaultQuery("size", "10")); err == nil && size > 0 && size <= 100 {
		filters.Limit = size
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 1 {
		filters.Offset = (page - 1) * filters.Limit
	}

	if raw := c.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		filters.Status = &status
	}
	if raw := c.Query("student_type"); raw != "" {
		st := models.StudentType(raw)
		filters.StudentType = &st
	}
	if raw := c.Query("governorate"); raw != "" {
		filters.Governorate = &raw
	}

	return filters
}
