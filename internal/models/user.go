package models

import (
	"time"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent UserRole = "student"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID        uint   `json:"id"`
	OpenID    string `json:"open_id,omitempty"`
	Username  string `json:"username,omitempty"`
	StudentID string `json:"student_id,omitempty"`

	// Bcrypt hash. Persisted in the store document, stripped from API
	// responses via UserResponse.
	PasswordHash string `json:"password_hash,omitempty"`

	// Profile info
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	NationalID  string   `json:"national_id"`
	Role        UserRole `json:"role"`

	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`
}

// UserResponse is the API-safe projection of a User.
type UserResponse struct {
	ID           uint       `json:"id"`
	Username     string     `json:"username,omitempty"`
	StudentID    string     `json:"student_id,omitempty"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number"`
	NationalID   string     `json:"national_id"`
	Role         UserRole   `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		StudentID:    u.StudentID,
		FullName:     u.FullName,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		NationalID:   u.NationalID,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		LastSignedIn: u.LastSignedIn,
	}
}
