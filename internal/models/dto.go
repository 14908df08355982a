package models

import (
	"time"
)

// ===== INQUIRY DTOs =====

// InquirySource identifies which side of the lookup answered.
type InquirySource string

const (
	SourceLocal    InquirySource = "local"
	SourceUpstream InquirySource = "upstream"
)

// InquiryResult is the outcome of a national-ID status lookup. Found=false
// with a nil Application is the normal empty result, not an error.
type InquiryResult struct {
	Found       bool          `json:"found"`
	Source      InquirySource `json:"source,omitempty"`
	Application *Application  `json:"application,omitempty"`
}

// ===== APPLICATION SUMMARY DTOs =====

type ApplicationSummary struct {
	ID          uint              `json:"id"`
	FullName    string            `json:"full_name"`
	StudentID   string            `json:"student_id"`
	StudentType StudentType       `json:"student_type"`
	Major       string            `json:"major"`
	Governorate string            `json:"governorate"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error            string                    `json:"error"`
	Message          string                    `json:"message"`
	Code             string                    `json:"code,omitempty"`
	Details          interface{}               `json:"details,omitempty"`
	Timestamp        time.Time                 `json:"timestamp"`
	Path             string                    `json:"path,omitempty"`
	ValidationErrors []ValidationErrorResponse `json:"validation_errors,omitempty"`
}

type ValidationErrorResponse struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
