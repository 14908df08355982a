package flatfile

import (
	"context"
	"fmt"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/store"
)

type UserFlatFile struct {
	store *store.Store
}

func NewUserFlatFile(st *store.Store) repositories.UserRepository {
	return &UserFlatFile{store: st}
}

func (r *UserFlatFile) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var created *models.User
	err := r.store.Update(func(doc *store.Document) error {
		created = insertUser(doc, user)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *UserFlatFile) CreateUnique(ctx context.Context, user *models.User) (*models.User, error) {
	var created *models.User
	err := r.store.Update(func(doc *store.Document) error {
		for _, u := range doc.Users {
			if u.Username != "" && u.Username == user.Username {
				return fmt.Errorf("%w: username %q", repositories.ErrDuplicate, user.Username)
			}
		}
		created = insertUser(doc, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Upsert merges by OpenID. Only non-zero incoming fields overwrite the
// existing record; UpdatedAt and LastSignedIn always refresh.
func (r *UserFlatFile) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	var result *models.User
	err := r.store.Update(func(doc *store.Document) error {
		now := time.Now()

		if user.OpenID != "" {
			for _, existing := range doc.Users {
				if existing.OpenID != user.OpenID {
					continue
				}
				mergeUser(existing, user)
				existing.UpdatedAt = now
				existing.LastSignedIn = &now
				result = cloneUser(existing)
				return nil
			}
		}

		result = insertUser(doc, user)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return result, nil
}

func (r *UserFlatFile) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.findUser(func(u *models.User) bool { return u.ID == id })
}

func (r *UserFlatFile) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findUser(func(u *models.User) bool { return u.Username == username })
}

func (r *UserFlatFile) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	return r.findUser(func(u *models.User) bool { return u.OpenID != "" && u.OpenID == openID })
}

func (r *UserFlatFile) TouchSignIn(ctx context.Context, id uint) error {
	return r.store.Update(func(doc *store.Document) error {
		for _, u := range doc.Users {
			if u.ID == id {
				now := time.Now()
				u.UpdatedAt = now
				u.LastSignedIn = &now
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

func (r *UserFlatFile) findUser(match func(*models.User) bool) (*models.User, error) {
	var found *models.User
	err := r.store.View(func(doc *store.Document) error {
		for _, u := range doc.Users {
			if match(u) {
				found = cloneUser(u)
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

func insertUser(doc *store.Document, user *models.User) *models.User {
	now := time.Now()

	u := cloneUser(user)
	u.ID = doc.NextUserID
	doc.NextUserID++
	if u.Role == "" {
		u.Role = models.RoleStudent
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	u.LastSignedIn = &now

	doc.Users = append(doc.Users, u)
	return cloneUser(u)
}

func mergeUser(dst, src *models.User) {
	if src.Username != "" {
		dst.Username = src.Username
	}
	if src.StudentID != "" {
		dst.StudentID = src.StudentID
	}
	if src.PasswordHash != "" {
		dst.PasswordHash = src.PasswordHash
	}
	if src.FullName != "" {
		dst.FullName = src.FullName
	}
	if src.Email != "" {
		dst.Email = src.Email
	}
	if src.PhoneNumber != "" {
		dst.PhoneNumber = src.PhoneNumber
	}
	if src.NationalID != "" {
		dst.NationalID = src.NationalID
	}
	if src.Role != "" {
		dst.Role = src.Role
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.LastSignedIn != nil {
		t := *u.LastSignedIn
		c.LastSignedIn = &t
	}
	return &c
}
