package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/HUSC-F-2025/housing-service/internal/events"
	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

type BulkNotificationRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

type BulkNotificationResult struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
	Failed    int `json:"failed"`
}

// ===== SERVICE INTERFACE =====

type NotificationService interface {
	// Notify records a single notification for one user.
	Notify(ctx context.Context, userID uint, title, message string) error

	// ListMine returns the caller's notifications, newest first.
	ListMine(ctx context.Context, userID uint) ([]*models.Notification, error)

	// MarkRead flips the read flag. The lookup is scoped to the caller so
	// one user cannot acknowledge another user's notifications.
	MarkRead(ctx context.Context, userID, notificationID uint) error

	// SendBulk fans a notification out to many users at once. Individual
	// failures are counted, not fatal.
	SendBulk(ctx context.Context, req *BulkNotificationRequest) (*BulkNotificationResult, error)
}

// ===== SERVICE IMPLEMENTATION =====

type notificationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewNotificationService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher) NotificationService {
	return &notificationService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uint, title, message string) error {
	_, err := s.repo.Notification().Create(ctx, &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	})
	return err
}

func (s *notificationService) ListMine(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.repo.Notification().GetByUserID(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	err := s.repo.Notification().MarkRead(ctx, notificationID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) SendBulk(ctx context.Context, req *BulkNotificationRequest) (*BulkNotificationResult, error) {
	result := &BulkNotificationResult{Requested: len(req.UserIDs)}

	for _, userID := range req.UserIDs {
		if err := s.Notify(ctx, userID, req.Title, req.Message); err != nil {
			s.logger.Warn("failed to create notification", "user_id", userID, "error", err)
			result.Failed++
			continue
		}
		result.Created++
	}

	s.logger.Info("bulk notification sent",
		"requested", result.Requested,
		"created", result.Created,
		"failed", result.Failed)

	if s.publisher != nil {
		event := events.NewEvent(events.TypeBulkNotification, map[string]interface{}{
			"requested": result.Requested,
			"created":   result.Created,
			"failed":    result.Failed,
			"title":     req.Title,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish bulk notification event", "error", err)
		}
	}

	return result, nil
}
