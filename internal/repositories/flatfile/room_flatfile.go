package flatfile

import (
	"context"
	"fmt"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/store"
)

type RoomAssignmentFlatFile struct {
	store *store.Store
}

func NewRoomAssignmentFlatFile(st *store.Store) repositories.RoomAssignmentRepository {
	return &RoomAssignmentFlatFile{store: st}
}

func (r *RoomAssignmentFlatFile) Create(ctx context.Context, assignment *models.RoomAssignment) (*models.RoomAssignment, error) {
	var created *models.RoomAssignment
	err := r.store.Update(func(doc *store.Document) error {
		a := *assignment
		a.ID = doc.NextRoomAssignmentID
		doc.NextRoomAssignmentID++
		a.AssignedAt = time.Now()

		doc.RoomAssignments = append(doc.RoomAssignments, &a)
		c := a
		created = &c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create room assignment: %w", err)
	}
	return created, nil
}

func (r *RoomAssignmentFlatFile) GetByStudentID(ctx context.Context, studentID string) ([]*models.RoomAssignment, error) {
	var result []*models.RoomAssignment
	err := r.store.View(func(doc *store.Document) error {
		for _, a := range doc.RoomAssignments {
			if a.StudentID == studentID {
				c := *a
				result = append(result, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list room assignments by student: %w", err)
	}
	return result, nil
}
