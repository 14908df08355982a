package repositories

import (
	"context"

	"github.com/HUSC-F-2025/housing-service/internal/models"
)

// UserRepository interface for user operations over the flat-file store.
type UserRepository interface {
	// Create allocates an id from the user counter and inserts. It does not
	// check username uniqueness; CreateUnique does.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// CreateUnique inserts only if no user carries the same username.
	CreateUnique(ctx context.Context, user *models.User) (*models.User, error)

	// Upsert merges by OpenID: when a user with user.OpenID exists, provided
	// non-zero fields overwrite it and UpdatedAt/LastSignedIn refresh;
	// otherwise a new user is inserted. Returns the resulting user.
	Upsert(ctx context.Context, user *models.User) (*models.User, error)

	// Lookups are linear scans; acceptable at this portal's user-base scale.
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)

	// TouchSignIn refreshes UpdatedAt/LastSignedIn after a login.
	TouchSignIn(ctx context.Context, id uint) error
}
