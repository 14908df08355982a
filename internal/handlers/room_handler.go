package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

type RoomHandler struct {
	BaseHandler
	roomService services.RoomService
}

func NewRoomHandler(roomService services.RoomService, logger utils.Logger) *RoomHandler {
	return &RoomHandler{
		BaseHandler: NewBaseHandler(logger),
		roomService: roomService,
	}
}

// GetMyRoom lists the caller's room assignments
func (h *RoomHandler) GetMyRoom(c *gin.Context) {
	user, ok := GetUserFromContext(c)
	if !ok || user.StudentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "no student id on the signed-in account",
		})
		return
	}

	assignments, err := h.roomService.ListByStudent(c.Request.Context(), user.StudentID)
	if err != nil {
		h.LogError(c, err, "Failed to list room assignments", "student_id", user.StudentID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to list room assignments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments, "total": len(assignments)})
}

// AssignRoom records a room assignment for a student
func (h *RoomHandler) AssignRoom(c *gin.Context) {
	var req services.AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Assigning room", "student_id", req.StudentID, "building", req.Building, "room", req.Room)

	assignment, err := h.roomService.Assign(c.Request.Context(), &req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.RespondValidationErrors(c, verrs)
			return
		}
		h.LogError(c, err, "Failed to assign room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to assign room",
		})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}
