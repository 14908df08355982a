package flatfile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/store"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

type ApplicationFlatFile struct {
	store *store.Store
}

func NewApplicationFlatFile(st *store.Store) repositories.ApplicationRepository {
	return &ApplicationFlatFile{store: st}
}

func (r *ApplicationFlatFile) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	var created *models.Application
	err := r.store.Update(func(doc *store.Document) error {
		now := time.Now()

		a := cloneApplication(app)
		a.ID = doc.NextApplicationID
		doc.NextApplicationID++
		if a.Status == "" {
			a.Status = models.StatusSubmitted
		}
		a.SubmittedAt = now
		a.UpdatedAt = now

		doc.Applications = append(doc.Applications, a)
		created = cloneApplication(a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

func (r *ApplicationFlatFile) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var found *models.Application
	err := r.store.View(func(doc *store.Document) error {
		for _, a := range doc.Applications {
			if a.ID == id {
				found = cloneApplication(a)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *ApplicationFlatFile) GetByUserID(ctx context.Context, userID uint) ([]*models.Application, error) {
	var result []*models.Application
	err := r.store.View(func(doc *store.Document) error {
		for _, a := range doc.Applications {
			if a.UserID == userID {
				result = append(result, cloneApplication(a))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by user: %w", err)
	}
	return result, nil
}

// GetByNationalID normalizes both sides of the comparison to digits only,
// so a record stored as "303-0303-030303" matches a query of
// "30303030303030".
func (r *ApplicationFlatFile) GetByNationalID(ctx context.Context, nationalID string) ([]*models.Application, error) {
	query := validator.DigitsOnly(nationalID)
	if query == "" {
		return nil, nil
	}

	var result []*models.Application
	err := r.store.View(func(doc *store.Document) error {
		for _, a := range doc.Applications {
			if a.NationalID == "" {
				continue
			}
			if validator.DigitsOnly(a.NationalID) == query {
				result = append(result, cloneApplication(a))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search applications by national id: %w", err)
	}
	return result, nil
}

func (r *ApplicationFlatFile) List(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	var matched []*models.Application
	err := r.store.View(func(doc *store.Document) error {
		for _, a := range doc.Applications {
			if filters.Status != nil && a.Status != *filters.Status {
				continue
			}
			if filters.StudentType != nil && a.StudentType != *filters.StudentType {
				continue
			}
			if filters.Governorate != nil && a.Governorate != *filters.Governorate {
				continue
			}
			matched = append(matched, cloneApplication(a))
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	total := int64(len(matched))
	sortApplications(matched, filters.SortBy, filters.SortOrder)
	return paginateApplications(matched, filters.Limit, filters.Offset), total, nil
}

func (r *ApplicationFlatFile) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) (*models.Application, error) {
	var updated *models.Application
	err := r.store.Update(func(doc *store.Document) error {
		for _, a := range doc.Applications {
			if a.ID == id {
				a.Status = status
				a.UpdatedAt = time.Now()
				updated = cloneApplication(a)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func sortApplications(apps []*models.Application, sortBy, sortOrder string) {
	// Whitelist allowed sort fields
	switch sortBy {
	case "submitted_at", "updated_at", "full_name":
	default:
		sortBy = "submitted_at"
	}
	asc := sortOrder == "asc" || sortOrder == "ASC"

	sort.SliceStable(apps, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "updated_at":
			less = apps[i].UpdatedAt.Before(apps[j].UpdatedAt)
		case "full_name":
			less = apps[i].FullName < apps[j].FullName
		default:
			less = apps[i].SubmittedAt.Before(apps[j].SubmittedAt)
		}
		if asc {
			return less
		}
		return !less
	})
}

func paginateApplications(apps []*models.Application, limit, offset int) []*models.Application {
	if offset > 0 {
		if offset >= len(apps) {
			return nil
		}
		apps = apps[offset:]
	}
	if limit > 0 && limit < len(apps) {
		apps = apps[:limit]
	}
	return apps
}

func cloneApplication(a *models.Application) *models.Application {
	c := *a
	return &c
}
