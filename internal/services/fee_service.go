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

type RecordPaymentRequest = validator.FeePaymentRequest

type FeeSummary struct {
	Fees       []*models.Fee `json:"fees"`
	TotalDue   float64       `json:"total_due"`
	TotalPaid  float64       `json:"total_paid"`
	UnpaidFees int           `json:"unpaid_fees"`
}

// ===== SERVICE INTERFACE =====

type FeeService interface {
	// ListByStudent returns the fees charged against one student id along
	// with due and paid totals.
	ListByStudent(ctx context.Context, studentID string) (*FeeSummary, error)

	// RecordPayment stores the payment, marks the fee as paid and publishes
	// the payment event.
	RecordPayment(ctx context.Context, userID uint, req *RecordPaymentRequest) (*models.FeePayment, error)

	// ListPaymentsMine returns the caller's recorded payments.
	ListPaymentsMine(ctx context.Context, userID uint) ([]*models.FeePayment, error)
}

// ===== SERVICE IMPLEMENTATION =====

type feeService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewFeeService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) FeeService {
	return &feeService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *feeService) ListByStudent(ctx context.Context, studentID string) (*FeeSummary, error) {
	fees, err := s.repo.Fee().GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	summary := &FeeSummary{Fees: fees}
	for _, fee := range fees {
		if fee.Paid {
			summary.TotalPaid += fee.Amount
		} else {
			summary.TotalDue += fee.Amount
			summary.UnpaidFees++
		}
	}
	return summary, nil
}

func (s *feeService) RecordPayment(ctx context.Context, userID uint, req *RecordPaymentRequest) (*models.FeePayment, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	fee, err := s.repo.Fee().GetByID(ctx, req.FeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}

	payment, err := s.repo.FeePayment().Create(ctx, &models.FeePayment{
		FeeID:       fee.ID,
		UserID:      userID,
		Amount:      req.Amount,
		ReceiptFile: req.ReceiptFile,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Fee().MarkPaid(ctx, fee.ID); err != nil {
		s.logger.Warn("failed to mark fee paid", "fee_id", fee.ID, "error", err)
	}

	s.logger.Info("fee payment recorded", "payment_id", payment.ID, "fee_id", fee.ID, "user_id", userID, "amount", payment.Amount)

	if s.publisher != nil {
		event := events.NewEvent(events.TypeFeePaymentRecorded, map[string]interface{}{
			"payment_id": payment.ID,
			"fee_id":     fee.ID,
			"user_id":    userID,
			"amount":     payment.Amount,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish payment event", "payment_id", payment.ID, "error", err)
		}
	}

	return payment, nil
}

func (s *feeService) ListPaymentsMine(ctx context.Context, userID uint) ([]*models.FeePayment, error) {
	return s.repo.FeePayment().GetByUserID(ctx, userID)
}
