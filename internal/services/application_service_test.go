package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/HUSC-F-2025/housing-service/internal/events"
	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/repositories/flatfile"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

func newApplicationFixture(t *testing.T) (ApplicationService, repositories.Repository, *events.MockEventPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := flatfile.NewFlatFileRepository(flatfile.RepositoryConfig{
		StorePath: filepath.Join(t.TempDir(), "housing.json"),
		Logger:    logger,
	})
	publisher := events.NewMockEventPublisher(logger)
	notifications := NewNotificationService(repo, logger, publisher)
	service := NewApplicationService(repo, logger, validator.New(), publisher, notifications)
	return service, repo, publisher
}

func validCreateRequest() *CreateApplicationRequest {
	return &CreateApplicationRequest{
		StudentType: "new",
		FullName:    "أحمد محمود",
		StudentID:   "20250001",
		NationalID:  "30303030303030",
		Email:       "ahmed@example.edu",
		Phone:       "01012345678",
		Major:       "هندسة",
		GPA:         88.5,
		Address:     "شارع الجامعة",
		Governorate: "القاهرة",
		FamilyIncome: "5000",
	}
}

func TestApplicationService_Submit(t *testing.T) {
	service, _, publisher := newApplicationFixture(t)
	ctx := context.Background()

	app, err := service.Submit(ctx, 1, validCreateRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if app.Status != models.StatusSubmitted {
		t.Errorf("expected status submitted, got %s", app.Status)
	}
	if app.GPAScale != 100 {
		t.Errorf("new students grade on the 0-100 scale, got scale %d", app.GPAScale)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	if published[0].Type != events.TypeApplicationSubmitted {
		t.Errorf("expected %s, got %s", events.TypeApplicationSubmitted, published[0].Type)
	}
}

func TestApplicationService_SubmitGPAScales(t *testing.T) {
	tests := []struct {
		name        string
		studentType string
		gpa         float64
		wantErr     bool
		wantScale   int
	}{
		{"new student in range", "new", 95, false, 100},
		{"new student over 100", "new", 101, true, 0},
		{"old student in range", "old", 3.2, false, 4},
		{"old student over 4", "old", 88.5, true, 0},
		{"negative", "new", -1, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newApplicationFixture(t)

			req := validCreateRequest()
			req.StudentType = tt.studentType
			req.GPA = tt.gpa

			app, err := service.Submit(context.Background(), 1, req)
			if tt.wantErr {
				var verrs validator.ValidationErrors
				if !errors.As(err, &verrs) {
					t.Fatalf("expected validation errors, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			if app.GPAScale != tt.wantScale {
				t.Errorf("expected scale %d, got %d", tt.wantScale, app.GPAScale)
			}
		})
	}
}

func TestApplicationService_Ownership(t *testing.T) {
	service, _, _ := newApplicationFixture(t)
	ctx := context.Background()

	app, err := service.Submit(ctx, 1, validCreateRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	t.Run("owner reads own", func(t *testing.T) {
		if _, err := service.GetByID(ctx, 1, models.RoleStudent, app.ID); err != nil {
			t.Errorf("owner must read own application, got %v", err)
		}
	})

	t.Run("other student forbidden", func(t *testing.T) {
		if _, err := service.GetByID(ctx, 2, models.RoleStudent, app.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("staff reads any", func(t *testing.T) {
		if _, err := service.GetByID(ctx, 2, models.RoleStaff, app.ID); err != nil {
			t.Errorf("staff must read any application, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := service.GetByID(ctx, 1, models.RoleStudent, 999); !errors.Is(err, ErrApplicationNotFound) {
			t.Errorf("expected ErrApplicationNotFound, got %v", err)
		}
	})
}

func TestApplicationService_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ApplicationStatus
		to      models.ApplicationStatus
		wantErr bool
	}{
		{"submitted to review", models.StatusSubmitted, models.StatusReview, false},
		{"submitted straight to rejected", models.StatusSubmitted, models.StatusRejected, false},
		{"review to approved", models.StatusReview, models.StatusApproved, false},
		{"approved is terminal", models.StatusApproved, models.StatusReview, true},
		{"rejected is terminal", models.StatusRejected, models.StatusReview, true},
		{"review back to submitted", models.StatusReview, models.StatusSubmitted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newApplicationFixture(t)
			ctx := context.Background()

			app, err := service.Submit(ctx, 1, validCreateRequest())
			if err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			if tt.from != models.StatusSubmitted {
				if _, err := repo.Application().UpdateStatus(ctx, app.ID, tt.from); err != nil {
					t.Fatalf("seed status failed: %v", err)
				}
			}

			_, err = service.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: tt.to})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatusTransition) {
					t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus failed: %v", err)
			}
		})
	}
}

func TestApplicationService_StatusChangeNotifiesOwner(t *testing.T) {
	service, repo, publisher := newApplicationFixture(t)
	ctx := context.Background()

	app, err := service.Submit(ctx, 7, validCreateRequest())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	publisher.ClearEvents()

	if _, err := service.UpdateStatus(ctx, app.ID, &UpdateStatusRequest{Status: models.StatusApproved}); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeApplicationStatusChanged {
		t.Fatalf("expected one status-changed event, got %+v", published)
	}

	notifications, err := repo.Notification().GetByUserID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected the owner to be notified once, got %d", len(notifications))
	}
	if notifications[0].Read {
		t.Error("new notification must start unread")
	}
}
