package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

// ErrorResponse is the handler-level error payload
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler provides shared logging helpers for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with the request-scoped logger
func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

// LogError logs a handler error with the request-scoped logger
func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c, h.logger).Error(msg, args...)
}

// RespondValidationErrors writes field-level validation failures as a 400
func (h BaseHandler) RespondValidationErrors(c *gin.Context, errs validator.ValidationErrors) {
	details := make([]models.ValidationErrorResponse, 0, len(errs))
	for _, e := range errs {
		details = append(details, models.ValidationErrorResponse{
			Field:   e.Field,
			Message: e.Message,
			Value:   e.Value,
			Rule:    e.Rule,
		})
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:            "validation_failed",
		Message:          "request validation failed",
		Timestamp:        time.Now().UTC(),
		Path:             c.Request.URL.Path,
		ValidationErrors: details,
	})
}

// ===== CONTEXT HELPERS =====

// GetUserIDFromContext extracts the authenticated user id set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetUserRoleFromContext extracts the authenticated user role.
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, bool) {
	v, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	role, ok := v.(models.UserRole)
	return role, ok
}

// GetUserFromContext extracts the full user record when the middleware
// loaded one.
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
