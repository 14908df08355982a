package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/HUSC-F-2025/housing-service/internal/events"
	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateComplaintRequest = validator.ComplaintCreateRequest

type ComplaintListResponse struct {
	Complaints []*models.Complaint `json:"complaints"`
	Total      int64               `json:"total"`
}

type ResolveComplaintRequest struct {
	Status models.ComplaintStatus `json:"status" validate:"required,oneof=pending resolved closed"`
}

// ===== SERVICE INTERFACE =====

type ComplaintService interface {
	Create(ctx context.Context, userID uint, req *CreateComplaintRequest) (*models.Complaint, error)

	// ListMine returns the caller's own complaints.
	ListMine(ctx context.Context, userID uint) ([]*models.Complaint, error)

	// List is staff-facing and supports status filtering.
	List(ctx context.Context, filters repositories.ComplaintFilters) (*ComplaintListResponse, error)

	// Resolve moves a complaint out of pending and notifies its owner.
	Resolve(ctx context.Context, id uint, req *ResolveComplaintRequest) (*models.Complaint, error)
}

// ===== SERVICE IMPLEMENTATION =====

type complaintService struct {
	repo          repositories.Repository
	logger        *slog.Logger
	validator     *validator.Validator
	publisher     events.EventPublisher
	notifications NotificationService
}

func NewComplaintService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, notifications NotificationService) ComplaintService {
	return &complaintService{
		repo:          repo,
		logger:        logger,
		validator:     v,
		publisher:     publisher,
		notifications: notifications,
	}
}

func (s *complaintService) Create(ctx context.Context, userID uint, req *CreateComplaintRequest) (*models.Complaint, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	complaint, err := s.repo.Complaint().Create(ctx, &models.Complaint{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("complaint created", "complaint_id", complaint.ID, "user_id", userID)
	return complaint, nil
}

func (s *complaintService) ListMine(ctx context.Context, userID uint) ([]*models.Complaint, error) {
	return s.repo.Complaint().GetByUserID(ctx, userID)
}

func (s *complaintService) List(ctx context.Context, filters repositories.ComplaintFilters) (*ComplaintListResponse, error) {
	complaints, total, err := s.repo.Complaint().List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return &ComplaintListResponse{Complaints: complaints, Total: total}, nil
}

func (s *complaintService) Resolve(ctx context.Context, id uint, req *ResolveComplaintRequest) (*models.Complaint, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	complaint, err := s.repo.Complaint().UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	s.logger.Info("complaint status changed", "complaint_id", complaint.ID, "status", complaint.Status)

	if complaint.Status == models.ComplaintResolved {
		if s.publisher != nil {
			event := events.NewEvent(events.TypeComplaintResolved, map[string]interface{}{
				"complaint_id": complaint.ID,
				"user_id":      complaint.UserID,
			})
			if err := s.publisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish complaint event", "complaint_id", complaint.ID, "error", err)
			}
		}
		if s.notifications != nil {
			if err := s.notifications.Notify(ctx, complaint.UserID, "Complaint resolved", "Your complaint has been resolved: "+complaint.Title); err != nil {
				s.logger.Warn("failed to create complaint notification", "complaint_id", complaint.ID, "error", err)
			}
		}
	}

	return complaint, nil
}
