package repositories

import (
	"context"
	"errors"

	"github.com/HUSC-F-2025/housing-service/internal/models"
)

// ErrNotFound is returned by Get* operations when no record matches.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned by uniqueness-checked inserts.
var ErrDuplicate = errors.New("record already exists")

// ===== SHARED FILTER STRUCTS =====

type ApplicationFilters struct {
	Status      *models.ApplicationStatus `json:"status"`
	StudentType *models.StudentType       `json:"student_type"`
	Governorate *string                   `json:"governorate"`
	Limit       int                       `json:"limit"`
	Offset      int                       `json:"offset"`
	SortBy      string                    `json:"sort_by"`    // "submitted_at", "updated_at", "full_name"
	SortOrder   string                    `json:"sort_order"` // "asc", "desc"
}

type ComplaintFilters struct {
	Status *models.ComplaintStatus `json:"status"`
	UserID *uint                   `json:"user_id"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// ===== ENTITY REPOSITORIES =====

type ApplicationRepository interface {
	// Create allocates an id from the application counter, defaults unset
	// optional fields, stamps SubmittedAt/UpdatedAt and defaults the status
	// to submitted.
	Create(ctx context.Context, app *models.Application) (*models.Application, error)

	GetByID(ctx context.Context, id uint) (*models.Application, error)

	// GetByUserID is the ownership-scoped read; access control happens by
	// callers only ever passing their own id.
	GetByUserID(ctx context.Context, userID uint) ([]*models.Application, error)

	// GetByNationalID digit-normalizes both the query and every stored
	// national id before comparing, so "303-0303-030303" matches
	// "30303030303030".
	GetByNationalID(ctx context.Context, nationalID string) ([]*models.Application, error)

	// List is unscoped and intended for staff use; access control is the
	// caller's responsibility.
	List(ctx context.Context, filters ApplicationFilters) ([]*models.Application, int64, error)

	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) (*models.Application, error)
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) (*models.Complaint, error)
	GetByID(ctx context.Context, id uint) (*models.Complaint, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Complaint, error)
	List(ctx context.Context, filters ComplaintFilters) ([]*models.Complaint, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ComplaintStatus) (*models.Complaint, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Notification, error)

	// MarkRead is ownership-scoped: it only flips a notification that
	// belongs to userID.
	MarkRead(ctx context.Context, id, userID uint) error
}

type FeeRepository interface {
	Create(ctx context.Context, fee *models.Fee) (*models.Fee, error)
	GetByID(ctx context.Context, id uint) (*models.Fee, error)
	GetByStudentID(ctx context.Context, studentID string) ([]*models.Fee, error)
	MarkPaid(ctx context.Context, id uint) error
}

type FeePaymentRepository interface {
	Create(ctx context.Context, payment *models.FeePayment) (*models.FeePayment, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.FeePayment, error)
}

type RoomAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.RoomAssignment) (*models.RoomAssignment, error)
	GetByStudentID(ctx context.Context, studentID string) ([]*models.RoomAssignment, error)
}
