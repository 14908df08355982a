package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/HUSC-F-2025/housing-service/internal/events"
	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateApplicationRequest = validator.ApplicationCreateRequest

type ApplicationListResponse struct {
	Applications []*models.Application `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Size         int                   `json:"size"`
}

type UpdateStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=submitted review approved rejected"`
	Reason *string                  `json:"reason" validate:"omitempty,max=500"`
}

// ===== SERVICE INTERFACE =====

type ApplicationService interface {
	// Submit creates the application for the calling user. Students never
	// edit an application after creation; only its status moves.
	Submit(ctx context.Context, userID uint, req *CreateApplicationRequest) (*models.Application, error)

	// GetMine returns the caller's own applications.
	GetMine(ctx context.Context, userID uint) ([]*models.Application, error)

	// GetByID enforces ownership: non-staff callers only see their own.
	GetByID(ctx context.Context, callerID uint, callerRole models.UserRole, id uint) (*models.Application, error)

	// List is staff-facing; handlers gate it behind the role middleware.
	List(ctx context.Context, filters repositories.ApplicationFilters) (*ApplicationListResponse, error)

	// UpdateStatus applies a staff-driven transition and notifies the owner.
	UpdateStatus(ctx context.Context, id uint, req *UpdateStatusRequest) (*models.Application, error)
}

// ===== SERVICE IMPLEMENTATION =====

type applicationService struct {
	repo          repositories.Repository
	logger        *slog.Logger
	validator     *validator.Validator
	publisher     events.EventPublisher
	notifications NotificationService
}

func NewApplicationService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, notifications NotificationService) ApplicationService {
	return &applicationService{
		repo:          repo,
		logger:        logger,
		validator:     v,
		publisher:     publisher,
		notifications: notifications,
	}
}

func (s *applicationService) Submit(ctx context.Context, userID uint, req *CreateApplicationRequest) (*models.Application, error) {
	if errs := s.validator.ValidateApplicationCreate(req); errs.HasErrors() {
		return nil, errs
	}

	gpaScale := 100
	if req.StudentType == "old" {
		gpaScale = 4
	}

	app, err := s.repo.Application().Create(ctx, &models.Application{
		UserID:         userID,
		StudentType:    models.StudentType(req.StudentType),
		FullName:       req.FullName,
		StudentID:      req.StudentID,
		NationalID:     req.NationalID,
		Email:          req.Email,
		Phone:          req.Phone,
		Major:          req.Major,
		GPA:            req.GPA,
		GPAScale:       gpaScale,
		Address:        req.Address,
		Governorate:    req.Governorate,
		FamilyIncome:   req.FamilyIncome,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("application submitted", "application_id", app.ID, "user_id", userID, "student_type", app.StudentType)

	s.publishEvent(ctx, events.TypeApplicationSubmitted, map[string]interface{}{
		"application_id": app.ID,
		"user_id":        userID,
		"student_type":   app.StudentType,
	})

	return app, nil
}

func (s *applicationService) GetMine(ctx context.Context, userID uint) ([]*models.Application, error) {
	return s.repo.Application().GetByUserID(ctx, userID)
}

func (s *applicationService) GetByID(ctx context.Context, callerID uint, callerRole models.UserRole, id uint) (*models.Application, error) {
	app, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if app.UserID != callerID && callerRole != models.RoleStaff && callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, filters repositories.ApplicationFilters) (*ApplicationListResponse, error) {
	apps, total, err := s.repo.Application().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	size := filters.Limit
	if size <= 0 {
		size = len(apps)
	}
	page := 1
	if size > 0 {
		page = (filters.Offset / size) + 1
	}

	return &ApplicationListResponse{
		Applications: apps,
		Total:        total,
		Page:         page,
		Size:         size,
	}, nil
}

// Allowed transitions. Approved and rejected are terminal.
var applicationTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusSubmitted: {models.StatusReview, models.StatusApproved, models.StatusRejected},
	models.StatusReview:    {models.StatusApproved, models.StatusRejected},
	models.StatusApproved:  {},
	models.StatusRejected:  {},
}

func (s *applicationService) UpdateStatus(ctx context.Context, id uint, req *UpdateStatusRequest) (*models.Application, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	current, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if !transitionAllowed(current.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, req.Status)
	}

	app, err := s.repo.Application().UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("application status changed",
		"application_id", app.ID,
		"from", current.Status,
		"to", app.Status)

	s.publishEvent(ctx, events.TypeApplicationStatusChanged, map[string]interface{}{
		"application_id": app.ID,
		"user_id":        app.UserID,
		"from":           current.Status,
		"to":             app.Status,
	})

	if s.notifications != nil {
		title := "Housing application update"
		message := fmt.Sprintf("Your application is now %s", app.Status)
		if err := s.notifications.Notify(ctx, app.UserID, title, message); err != nil {
			s.logger.Warn("failed to create status notification", "application_id", app.ID, "error", err)
		}
	}

	return app, nil
}

func (s *applicationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish event", "type", eventType, "error", err)
	}
}

func transitionAllowed(from, to models.ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}
