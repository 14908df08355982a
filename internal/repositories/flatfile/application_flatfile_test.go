package flatfile

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
)

func newTestRepo(t *testing.T) repositories.Repository {
	t.Helper()
	return NewFlatFileRepository(RepositoryConfig{
		StorePath: filepath.Join(t.TempDir(), "housing.json"),
		Logger:    slog.New(slog.NewTextHandler(os.Stdout, nil)),
	})
}

func TestApplicationFlatFile_CreateDefaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	app, err := repo.Application().Create(ctx, &models.Application{
		UserID:      1,
		StudentType: models.StudentTypeNew,
		FullName:    "طالب جديد",
		NationalID:  "30303030303030",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if app.ID != 1 {
		t.Errorf("expected first id 1, got %d", app.ID)
	}
	if app.Status != models.StatusSubmitted {
		t.Errorf("expected default status submitted, got %s", app.Status)
	}
	if app.SubmittedAt.IsZero() || app.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be stamped")
	}

	second, err := repo.Application().Create(ctx, &models.Application{UserID: 1})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("expected sequential id 2, got %d", second.ID)
	}
}

func TestApplicationFlatFile_GetByNationalID_Normalizes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Stored with separators; queried with bare digits, and vice versa.
	if _, err := repo.Application().Create(ctx, &models.Application{
		UserID:     1,
		NationalID: "303-0303-030303-0",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name    string
		query   string
		matches int
	}{
		{"bare digits", "30303030303030", 1},
		{"spaced digits", "303 0303 030303 0", 1},
		{"different id", "29901011234567", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps, err := repo.Application().GetByNationalID(ctx, tt.query)
			if err != nil {
				t.Fatalf("GetByNationalID failed: %v", err)
			}
			if len(apps) != tt.matches {
				t.Errorf("expected %d matches, got %d", tt.matches, len(apps))
			}
		})
	}
}

func TestApplicationFlatFile_List(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []*models.Application{
		{UserID: 1, StudentType: models.StudentTypeNew, FullName: "أحمد", Governorate: "القاهرة"},
		{UserID: 2, StudentType: models.StudentTypeOld, FullName: "باسم", Governorate: "الجيزة"},
		{UserID: 3, StudentType: models.StudentTypeNew, FullName: "جميل", Governorate: "القاهرة"},
	}
	for _, a := range seed {
		if _, err := repo.Application().Create(ctx, a); err != nil {
			t.Fatalf("seed Create failed: %v", err)
		}
	}

	t.Run("filter by student type", func(t *testing.T) {
		st := models.StudentTypeNew
		apps, total, err := repo.Application().List(ctx, repositories.ApplicationFilters{StudentType: &st})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if total != 2 || len(apps) != 2 {
			t.Errorf("expected 2 new-student applications, got total=%d len=%d", total, len(apps))
		}
	})

	t.Run("filter by governorate", func(t *testing.T) {
		gov := "الجيزة"
		apps, total, err := repo.Application().List(ctx, repositories.ApplicationFilters{Governorate: &gov})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if total != 1 || apps[0].UserID != 2 {
			t.Errorf("expected the one Giza application, got total=%d", total)
		}
	})

	t.Run("pagination keeps total", func(t *testing.T) {
		apps, total, err := repo.Application().List(ctx, repositories.ApplicationFilters{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if total != 3 {
			t.Errorf("expected total 3 regardless of page, got %d", total)
		}
		if len(apps) != 1 {
			t.Errorf("expected 1 application on last page, got %d", len(apps))
		}
	})

	t.Run("sort by name ascending", func(t *testing.T) {
		apps, _, err := repo.Application().List(ctx, repositories.ApplicationFilters{SortBy: "full_name", SortOrder: "asc"})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if apps[0].FullName != "أحمد" {
			t.Errorf("expected أحمد first, got %s", apps[0].FullName)
		}
	})
}

func TestApplicationFlatFile_UpdateStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	app, err := repo.Application().Create(ctx, &models.Application{UserID: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.Application().UpdateStatus(ctx, app.ID, models.StatusReview)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusReview {
		t.Errorf("expected status review, got %s", updated.Status)
	}

	if _, err := repo.Application().UpdateStatus(ctx, 999, models.StatusApproved); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}
