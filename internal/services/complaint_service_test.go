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

func newComplaintFixture(t *testing.T) (ComplaintService, repositories.Repository, *events.MockEventPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := flatfile.NewFlatFileRepository(flatfile.RepositoryConfig{
		StorePath: filepath.Join(t.TempDir(), "housing.json"),
		Logger:    logger,
	})
	publisher := events.NewMockEventPublisher(logger)
	notifications := NewNotificationService(repo, logger, publisher)
	service := NewComplaintService(repo, logger, validator.New(), publisher, notifications)
	return service, repo, publisher
}

func TestComplaintService_Create(t *testing.T) {
	service, _, _ := newComplaintFixture(t)
	ctx := context.Background()

	complaint, err := service.Create(ctx, 7, &CreateComplaintRequest{
		Title:       "تسريب مياه",
		Description: "يوجد تسريب مياه في الحمام المشترك بالدور الثالث",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if complaint.UserID != 7 {
		t.Errorf("expected user id 7, got %d", complaint.UserID)
	}
	if complaint.Status != models.ComplaintPending {
		t.Errorf("new complaints start pending, got %s", complaint.Status)
	}
	if complaint.ResolvedAt != nil {
		t.Error("pending complaint should not carry a resolution time")
	}
}

func TestComplaintService_CreateValidation(t *testing.T) {
	service, _, _ := newComplaintFixture(t)
	ctx := context.Background()

	_, err := service.Create(ctx, 7, &CreateComplaintRequest{
		Title:       "قص",
		Description: "قصير",
	})
	if err == nil {
		t.Fatal("expected validation error for short title and description")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verrs), verrs)
	}
}

func TestComplaintService_ListMineIsScoped(t *testing.T) {
	service, _, _ := newComplaintFixture(t)
	ctx := context.Background()

	for _, userID := range []uint{1, 1, 2} {
		if _, err := service.Create(ctx, userID, &CreateComplaintRequest{
			Title:       "مشكلة في الغرفة",
			Description: "وصف تفصيلي للمشكلة داخل غرفة السكن",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	mine, err := service.ListMine(ctx, 1)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 complaints for user 1, got %d", len(mine))
	}
	for _, c := range mine {
		if c.UserID != 1 {
			t.Errorf("complaint %d belongs to user %d, leaked into user 1 listing", c.ID, c.UserID)
		}
	}
}

func TestComplaintService_Resolve(t *testing.T) {
	service, repo, publisher := newComplaintFixture(t)
	ctx := context.Background()

	complaint, err := service.Create(ctx, 3, &CreateComplaintRequest{
		Title:       "ضوضاء مستمرة",
		Description: "ضوضاء مرتفعة من الغرفة المجاورة بعد منتصف الليل",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	publisher.ClearEvents()

	resolved, err := service.Resolve(ctx, complaint.ID, &ResolveComplaintRequest{Status: models.ComplaintResolved})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Status != models.ComplaintResolved {
		t.Errorf("expected resolved, got %s", resolved.Status)
	}
	if resolved.ResolvedAt == nil {
		t.Error("resolved complaint should record a resolution time")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	if published[0].Type != events.TypeComplaintResolved {
		t.Errorf("expected %s event, got %s", events.TypeComplaintResolved, published[0].Type)
	}

	notifications, err := repo.Notification().GetByUserID(ctx, 3)
	if err != nil {
		t.Fatalf("failed to read notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected the owner to be notified once, got %d notifications", len(notifications))
	}
}

func TestComplaintService_ResolveToClosedIsQuiet(t *testing.T) {
	service, repo, publisher := newComplaintFixture(t)
	ctx := context.Background()

	complaint, err := service.Create(ctx, 4, &CreateComplaintRequest{
		Title:       "طلب غير واضح",
		Description: "تم فتح الشكوى بالخطأ ولم يعد لها داعٍ حاليا",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	publisher.ClearEvents()

	closed, err := service.Resolve(ctx, complaint.ID, &ResolveComplaintRequest{Status: models.ComplaintClosed})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if closed.Status != models.ComplaintClosed {
		t.Errorf("expected closed, got %s", closed.Status)
	}

	if got := len(publisher.GetPublishedEvents()); got != 0 {
		t.Errorf("closing should not publish the resolved event, got %d events", got)
	}
	notifications, err := repo.Notification().GetByUserID(ctx, 4)
	if err != nil {
		t.Fatalf("failed to read notifications: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("closing should not notify the owner, got %d notifications", len(notifications))
	}
}

func TestComplaintService_ResolveUnknown(t *testing.T) {
	service, _, _ := newComplaintFixture(t)

	_, err := service.Resolve(context.Background(), 999, &ResolveComplaintRequest{Status: models.ComplaintResolved})
	if !errors.Is(err, ErrComplaintNotFound) {
		t.Errorf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestComplaintService_ListFiltersByStatus(t *testing.T) {
	service, _, _ := newComplaintFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		complaint, err := service.Create(ctx, uint(i+1), &CreateComplaintRequest{
			Title:       "مشكلة صيانة",
			Description: "وصف تفصيلي لمشكلة صيانة داخل المبنى السكني",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if i == 0 {
			if _, err := service.Resolve(ctx, complaint.ID, &ResolveComplaintRequest{Status: models.ComplaintResolved}); err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
		}
	}

	pending := models.ComplaintPending
	resp, err := service.List(ctx, repositories.ComplaintFilters{Status: &pending})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected 2 pending complaints, got %d", resp.Total)
	}
	for _, c := range resp.Complaints {
		if c.Status != models.ComplaintPending {
			t.Errorf("status filter leaked complaint %d with status %s", c.ID, c.Status)
		}
	}
}
