package upstream

import (
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
)

// Field-priority order for the legacy service's heterogeneous records.
// The first present, usable key wins. Defined once here; no call site
// re-derives this.
var (
	nameKeys   = []string{"full_name", "fullName", "name", "applicant_name"}
	statusKeys = []string{"status", "application_status", "state"}
	dateKeys   = []string{"submittedAt", "submitted_at", "createdAt", "created_at", "submissionDate", "submission_date", "date"}
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// MapRecord maps a loosely-typed upstream record into the canonical
// Application shape. Records with no usable date field carry the zero time,
// which sorts behind everything (the documented epoch-0 fallback).
func MapRecord(bag map[string]interface{}, nationalID string) *models.Application {
	app := &models.Application{
		NationalID: nationalID,
		FullName:   firstString(bag, nameKeys),
		Status:     mapStatus(firstString(bag, statusKeys)),
	}

	if raw := firstString(bag, dateKeys); raw != "" {
		app.SubmittedAt = parseDate(raw)
	}
	app.UpdatedAt = app.SubmittedAt

	if sid, ok := bag["student_id"].(string); ok {
		app.StudentID = sid
	}
	if major, ok := bag["major"].(string); ok {
		app.Major = major
	}
	if id, ok := bag["id"].(float64); ok && id > 0 {
		app.ID = uint(id)
	}

	return app
}

func firstString(bag map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if v, ok := bag[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func parseDate(raw string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func mapStatus(raw string) models.ApplicationStatus {
	switch raw {
	case "submitted", "pending", "received":
		return models.StatusSubmitted
	case "review", "in_review", "under_review":
		return models.StatusReview
	case "approved", "accepted":
		return models.StatusApproved
	case "rejected", "declined":
		return models.StatusRejected
	default:
		return models.StatusSubmitted
	}
}
