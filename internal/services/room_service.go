package services

import (
	"context"
	"log/slog"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type AssignRoomRequest struct {
	StudentID string `json:"student_id" validate:"required,max=32"`
	Building  string `json:"building" validate:"required,max=64"`
	Room      string `json:"room" validate:"required,max=32"`
}

// ===== SERVICE INTERFACE =====

type RoomService interface {
	// ListByStudent returns the room assignments recorded for a student id.
	ListByStudent(ctx context.Context, studentID string) ([]*models.RoomAssignment, error)

	// Assign records a room assignment; staff-only at the handler layer.
	Assign(ctx context.Context, req *AssignRoomRequest) (*models.RoomAssignment, error)
}

// ===== SERVICE IMPLEMENTATION =====

type roomService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRoomService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) RoomService {
	return &roomService{repo: repo, logger: logger, validator: v}
}

func (s *roomService) ListByStudent(ctx context.Context, studentID string) ([]*models.RoomAssignment, error) {
	return s.repo.RoomAssignment().GetByStudentID(ctx, studentID)
}

func (s *roomService) Assign(ctx context.Context, req *AssignRoomRequest) (*models.RoomAssignment, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	assignment, err := s.repo.RoomAssignment().Create(ctx, &models.RoomAssignment{
		StudentID: req.StudentID,
		Building:  req.Building,
		Room:      req.Room,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("room assigned", "student_id", assignment.StudentID, "building", assignment.Building, "room", assignment.Room)
	return assignment, nil
}
