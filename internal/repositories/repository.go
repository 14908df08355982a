package repositories

import "context"

// Repository aggregates every entity repository. This is the only layer
// other code may use to read or write portal state.
type Repository interface {
	// Identity domain
	User() UserRepository

	// Housing domain
	Application() ApplicationRepository
	Complaint() ComplaintRepository
	Notification() NotificationRepository

	// Finance domain
	Fee() FeeRepository
	FeePayment() FeePaymentRepository

	// Accommodation domain
	RoomAssignment() RoomAssignmentRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with the backing store
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
