package flatfile

import (
	"context"
	"fmt"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/store"
)

type NotificationFlatFile struct {
	store *store.Store
}

func NewNotificationFlatFile(st *store.Store) repositories.NotificationRepository {
	return &NotificationFlatFile{store: st}
}

func (r *NotificationFlatFile) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	var created *models.Notification
	err := r.store.Update(func(doc *store.Document) error {
		n := *notification
		n.ID = doc.NextNotificationID
		doc.NextNotificationID++
		n.Read = false
		n.CreatedAt = time.Now()

		doc.Notifications = append(doc.Notifications, &n)
		created = &models.Notification{}
		*created = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return created, nil
}

func (r *NotificationFlatFile) GetByUserID(ctx context.Context, userID uint) ([]*models.Notification, error) {
	var result []*models.Notification
	err := r.store.View(func(doc *store.Document) error {
		for _, n := range doc.Notifications {
			if n.UserID == userID {
				c := *n
				result = append(result, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications by user: %w", err)
	}
	return result, nil
}

func (r *NotificationFlatFile) MarkRead(ctx context.Context, id, userID uint) error {
	return r.store.Update(func(doc *store.Document) error {
		for _, n := range doc.Notifications {
			if n.ID == id && n.UserID == userID {
				n.Read = true
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}
