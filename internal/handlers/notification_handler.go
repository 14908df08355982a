package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

// GetMyNotifications lists the caller's notifications
func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	notifications, err := h.notificationService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Failed to list notifications")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
}

// MarkNotificationRead acknowledges a notification
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid notification id",
		})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "notification not found",
			})
			return
		}
		h.LogError(c, err, "Failed to mark notification read", "notification_id", id)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to mark notification read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

// SendBulkNotification fans a notification out to many users
func (h *NotificationHandler) SendBulkNotification(c *gin.Context) {
	var req services.BulkNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	if len(req.UserIDs) == 0 || req.Title == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "user_ids, title and message are required",
		})
		return
	}

	h.LogRequest(c, "Sending bulk notification", "recipients", len(req.UserIDs))

	result, err := h.notificationService.SendBulk(c.Request.Context(), &req)
	if err != nil {
		h.LogError(c, err, "Failed to send bulk notification")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to send bulk notification",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
