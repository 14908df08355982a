package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

type FeeHandler struct {
	BaseHandler
	feeService services.FeeService
}

func NewFeeHandler(feeService services.FeeService, logger utils.Logger) *FeeHandler {
	return &FeeHandler{
		BaseHandler: NewBaseHandler(logger),
		feeService:  feeService,
	}
}

// GetMyFees lists the caller's fees with due and paid totals
func (h *FeeHandler) GetMyFees(c *gin.Context) {
	user, ok := GetUserFromContext(c)
	if !ok || user.StudentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "no student id on the signed-in account",
		})
		return
	}

	summary, err := h.feeService.ListByStudent(c.Request.Context(), user.StudentID)
	if err != nil {
		h.LogError(c, err, "Failed to list fees", "student_id", user.StudentID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list fees",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RecordPayment records a fee payment for the caller
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Recording fee payment", "fee_id", req.FeeID, "user_id", userID)

	payment, err := h.feeService.RecordPayment(c.Request.Context(), userID, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondValidationErrors(c, verrs)
			return
		}
		if errors.Is(err, services.ErrFeeNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "fee not found",
			})
			return
		}
		h.LogError(c, err, "Failed to record payment", "fee_id", req.FeeID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to record payment",
		})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetMyPayments lists the caller's recorded payments
func (h *FeeHandler) GetMyPayments(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	payments, err := h.feeService.ListPaymentsMine(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Failed to list payments")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list payments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments, "total": len(payments)})
}
