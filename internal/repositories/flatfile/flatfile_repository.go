package flatfile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/store"
)

// FlatFileRepository implements the main Repository interface on top of the
// single-document JSON store.
type FlatFileRepository struct {
	store  *store.Store
	logger *slog.Logger

	// Repository instances
	user           repositories.UserRepository
	application    repositories.ApplicationRepository
	complaint      repositories.ComplaintRepository
	notification   repositories.NotificationRepository
	fee            repositories.FeeRepository
	feePayment     repositories.FeePaymentRepository
	roomAssignment repositories.RoomAssignmentRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	StorePath string
	Logger    *slog.Logger
}

// NewFlatFileRepository creates a new repository backed by the store at the
// configured path. All sub-repositories share the one store instance, so
// every reader sees the latest saved state.
func NewFlatFileRepository(config RepositoryConfig) repositories.Repository {
	st := store.New(config.StorePath, config.Logger)

	repo := &FlatFileRepository{
		store:  st,
		logger: config.Logger,
	}

	repo.user = NewUserFlatFile(st)
	repo.application = NewApplicationFlatFile(st)
	repo.complaint = NewComplaintFlatFile(st)
	repo.notification = NewNotificationFlatFile(st)
	repo.fee = NewFeeFlatFile(st)
	repo.feePayment = NewFeePaymentFlatFile(st)
	repo.roomAssignment = NewRoomAssignmentFlatFile(st)

	return repo
}

// User returns the user repository
func (r *FlatFileRepository) User() repositories.UserRepository {
	return r.user
}

// Application returns the application repository
func (r *FlatFileRepository) Application() repositories.ApplicationRepository {
	return r.application
}

// Complaint returns the complaint repository
func (r *FlatFileRepository) Complaint() repositories.ComplaintRepository {
	return r.complaint
}

// Notification returns the notification repository
func (r *FlatFileRepository) Notification() repositories.NotificationRepository {
	return r.notification
}

// Fee returns the fee repository
func (r *FlatFileRepository) Fee() repositories.FeeRepository {
	return r.fee
}

// FeePayment returns the fee payment repository
func (r *FlatFileRepository) FeePayment() repositories.FeePaymentRepository {
	return r.feePayment
}

// RoomAssignment returns the room assignment repository
func (r *FlatFileRepository) RoomAssignment() repositories.RoomAssignmentRepository {
	return r.roomAssignment
}

// Ping verifies the store is loadable.
func (r *FlatFileRepository) Ping(ctx context.Context) error {
	return r.store.View(func(doc *store.Document) error { return nil })
}

// Close is a no-op for the flat-file store; every mutation is already
// flushed before its call returns.
func (r *FlatFileRepository) Close() error {
	return nil
}

// Manager implements the RepositoryManager interface
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewManager creates a new repository manager
func NewManager(config RepositoryConfig) repositories.RepositoryManager {
	return &Manager{
		config: config,
	}
}

// Initialize validates the configuration and builds the repository.
func (m *Manager) Initialize() error {
	if m.config.StorePath == "" {
		return fmt.Errorf("store path is required")
	}
	if m.config.Logger == nil {
		return fmt.Errorf("logger is required")
	}

	m.repo = NewFlatFileRepository(m.config)

	// Force an initial load so a misconfigured path fails at startup.
	ctx := context.Background()
	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("store load failed: %w", err)
	}

	return nil
}

// GetRepository returns the repository instance
func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

// HealthCheck checks the health of the backing store
func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

// Shutdown gracefully shuts down the repository
func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
