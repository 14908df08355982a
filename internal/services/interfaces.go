package services

import "context"

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Auth() AuthService
	Inquiry() InquiryService
	Application() ApplicationService
	Complaint() ComplaintService
	Notification() NotificationService
	Fee() FeeService
	Room() RoomService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
