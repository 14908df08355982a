package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/config"
	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/uploads"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	casdoorAuthHandler  *CasdoorAuthHandler
	inquiryHandler      *InquiryHandler
	applicationHandler  *ApplicationHandler
	complaintHandler    *ComplaintHandler
	notificationHandler *NotificationHandler
	feeHandler          *FeeHandler
	roomHandler         *RoomHandler
	uploadHandler       *UploadHandler
	adminHandler        *AdminHandler
	authMiddleware      *JWTAuthMiddleware
	serviceManager      services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	gate *uploads.Gate,
	authMiddleware *JWTAuthMiddleware,
	casdoorConfig config.CasdoorConfig,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		casdoorAuthHandler:  NewCasdoorAuthHandler(casdoorConfig, serviceManager.Auth(), logger),
		inquiryHandler:      NewInquiryHandler(serviceManager.Inquiry(), logger),
		applicationHandler:  NewApplicationHandler(serviceManager.Application(), logger),
		complaintHandler:    NewComplaintHandler(serviceManager.Complaint(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		feeHandler:          NewFeeHandler(serviceManager.Fee(), logger),
		roomHandler:         NewRoomHandler(serviceManager.Room(), logger),
		uploadHandler:       NewUploadHandler(gate, logger),
		adminHandler:        NewAdminHandler(serviceManager.Export(), logger),
		authMiddleware:      authMiddleware,
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")

	// Public routes: account creation, login and the status inquiry
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/refresh", hm.authHandler.Refresh)
		auth.POST("/logout", hm.authHandler.Logout)
		auth.GET("/casdoor/callback", hm.casdoorAuthHandler.Callback)
	}
	v1.POST("/inquiry", hm.inquiryHandler.Lookup)

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/auth/me", hm.authHandler.Me)

		// Applications
		applications := authed.Group("/applications")
		{
			applications.POST("", hm.applicationHandler.CreateApplication)
			applications.GET("/mine", hm.applicationHandler.GetMyApplications)
			applications.GET("/:id", hm.applicationHandler.GetApplication)

			// Staff review surface
			applications.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.applicationHandler.ListApplications)
			applications.PUT("/:id/status", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.applicationHandler.UpdateApplicationStatus)
		}

		// Complaints
		complaints := authed.Group("/complaints")
		{
			complaints.POST("", hm.complaintHandler.CreateComplaint)
			complaints.GET("/mine", hm.complaintHandler.GetMyComplaints)
			complaints.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.complaintHandler.ListComplaints)
			complaints.PUT("/:id/status", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.complaintHandler.ResolveComplaint)
		}

		// Notifications
		notifications := authed.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.GetMyNotifications)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkNotificationRead)
			notifications.POST("/bulk", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.notificationHandler.SendBulkNotification)
		}

		// Fees and payments
		fees := authed.Group("/fees")
		{
			fees.GET("/mine", hm.feeHandler.GetMyFees)
			fees.POST("/payments", hm.feeHandler.RecordPayment)
			fees.GET("/payments/mine", hm.feeHandler.GetMyPayments)
		}

		// Room assignments
		rooms := authed.Group("/rooms")
		{
			rooms.GET("/mine", hm.roomHandler.GetMyRoom)
			rooms.POST("/assignments", hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff), hm.roomHandler.AssignRoom)
		}

		// Document uploads
		authed.POST("/uploads", hm.uploadHandler.UploadDocument)

		// Staff back office
		admin := authed.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStaff))
		{
			admin.GET("/applications/export", hm.adminHandler.ExportApplications)
		}
	}
}

// HealthCheck reports service liveness and store reachability
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "housing-service",
	})
}
