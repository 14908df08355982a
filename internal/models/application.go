package models

import (
	"time"
)

type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusReview    ApplicationStatus = "review"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
)

type StudentType string

const (
	StudentTypeNew StudentType = "new"
	StudentTypeOld StudentType = "old"
)

// Application is a housing application. Each belongs to exactly one user
// and is never edited by the student after submission; only the status
// moves, and only by staff.
type Application struct {
	ID          uint        `json:"id"`
	UserID      uint        `json:"user_id"`
	StudentType StudentType `json:"student_type"`

	FullName   string `json:"full_name"`
	StudentID  string `json:"student_id"`
	NationalID string `json:"national_id,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Major      string `json:"major"`

	// New-student forms grade on 0-100, old-student forms on 0-4.
	// The two scales coexist on purpose; GPAScale records which one applies.
	GPA      float64 `json:"gpa"`
	GPAScale int     `json:"gpa_scale"`

	Address        string `json:"address"`
	Governorate    string `json:"governorate"`
	FamilyIncome   string `json:"family_income"`
	AdditionalInfo string `json:"additional_info,omitempty"`

	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submitted_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "pending"
	ComplaintResolved ComplaintStatus = "resolved"
	ComplaintClosed   ComplaintStatus = "closed"
)

type Complaint struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      ComplaintStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
}

type Notification struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type Fee struct {
	ID          uint       `json:"id"`
	StudentID   string     `json:"student_id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Paid        bool       `json:"paid"`
	CreatedAt   time.Time  `json:"created_at"`
}

type FeePayment struct {
	ID          uint      `json:"id"`
	FeeID       uint      `json:"fee_id"`
	UserID      uint      `json:"user_id"`
	Amount      float64   `json:"amount"`
	ReceiptFile string    `json:"receipt_file,omitempty"`
	PaidAt      time.Time `json:"paid_at"`
}

type RoomAssignment struct {
	ID         uint      `json:"id"`
	StudentID  string    `json:"student_id"`
	Building   string    `json:"building"`
	Room       string    `json:"room"`
	AssignedAt time.Time `json:"assigned_at"`
}
