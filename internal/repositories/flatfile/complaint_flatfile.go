package flatfile

import (
	"context"
	"fmt"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/store"
)

type ComplaintFlatFile struct {
	store *store.Store
}

func NewComplaintFlatFile(st *store.Store) repositories.ComplaintRepository {
	return &ComplaintFlatFile{store: st}
}

func (r *ComplaintFlatFile) Create(ctx context.Context, complaint *models.Complaint) (*models.Complaint, error) {
	var created *models.Complaint
	err := r.store.Update(func(doc *store.Document) error {
		c := cloneComplaint(complaint)
		c.ID = doc.NextComplaintID
		doc.NextComplaintID++
		if c.Status == "" {
			c.Status = models.ComplaintPending
		}
		c.CreatedAt = time.Now()
		c.ResolvedAt = nil

		doc.Complaints = append(doc.Complaints, c)
		created = cloneComplaint(c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return created, nil
}

func (r *ComplaintFlatFile) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var found *models.Complaint
	err := r.store.View(func(doc *store.Document) error {
		for _, c := range doc.Complaints {
			if c.ID == id {
				found = cloneComplaint(c)
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

func (r *ComplaintFlatFile) GetByUserID(ctx context.Context, userID uint) ([]*models.Complaint, error) {
	var result []*models.Complaint
	err := r.store.View(func(doc *store.Document) error {
		for _, c := range doc.Complaints {
			if c.UserID == userID {
				result = append(result, cloneComplaint(c))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints by user: %w", err)
	}
	return result, nil
}

func (r *ComplaintFlatFile) List(ctx context.Context, filters repositories.ComplaintFilters) ([]*models.Complaint, int64, error) {
	var matched []*models.Complaint
	err := r.store.View(func(doc *store.Document) error {
		for _, c := range doc.Complaints {
			if filters.Status != nil && c.Status != *filters.Status {
				continue
			}
			if filters.UserID != nil && c.UserID != *filters.UserID {
				continue
			}
			matched = append(matched, cloneComplaint(c))
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}

	total := int64(len(matched))
	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

// UpdateStatus stamps ResolvedAt when the complaint leaves pending.
func (r *ComplaintFlatFile) UpdateStatus(ctx context.Context, id uint, status models.ComplaintStatus) (*models.Complaint, error) {
	var updated *models.Complaint
	err := r.store.Update(func(doc *store.Document) error {
		for _, c := range doc.Complaints {
			if c.ID == id {
				c.Status = status
				if status != models.ComplaintPending && c.ResolvedAt == nil {
					now := time.Now()
					c.ResolvedAt = &now
				}
				updated = cloneComplaint(c)
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

func cloneComplaint(c *models.Complaint) *models.Complaint {
	cp := *c
	if c.ResolvedAt != nil {
		t := *c.ResolvedAt
		cp.ResolvedAt = &t
	}
	return &cp
}
