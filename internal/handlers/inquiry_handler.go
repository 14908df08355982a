package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

// InquiryHandler serves the public application-status lookup. It is the
// one endpoint that does not require authentication; applicants check
// their status with nothing but a national id.
type InquiryHandler struct {
	BaseHandler
	inquiryService services.InquiryService
}

func NewInquiryHandler(inquiryService services.InquiryService, logger utils.Logger) *InquiryHandler {
	return &InquiryHandler{
		BaseHandler: NewBaseHandler(logger),
		inquiryService: inquiryService,
	}
}

// Lookup resolves the newest application for a national id
func (h *InquiryHandler) Lookup(c *gin.Context) {
	var req validator.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "national_id is required",
		})
		return
	}

	result, err := h.inquiryService.Lookup(c.Request.Context(), req.NationalID)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondValidationErrors(c, verrs)
			return
		}

		switch {
		case errors.Is(err, repositories.ErrUpstreamUnreachable):
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:   "bad_gateway",
				Code:    "upstream_unreachable",
				Message: "the records service could not be reached",
			})
		case errors.Is(err, repositories.ErrUpstreamUnauthorized):
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:   "bad_gateway",
				Code:    "upstream_unauthorized",
				Message: "the records service rejected our credentials",
			})
		case errors.Is(err, repositories.ErrUpstreamServer):
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:   "bad_gateway",
				Code:    "upstream_error",
				Message: "the records service failed to answer",
			})
		default:
			h.LogError(c, err, "Inquiry lookup failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "failed to look up application status",
			})
		}
		return
	}

	// Found=false is still a 200; an unknown id is a normal answer.
	c.JSON(http.StatusOK, result)
}
