package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
)

// JWTAuthMiddleware provides authentication using locally issued tokens
type JWTAuthMiddleware struct {
	secret   string
	userRepo repositories.UserRepository
}

func NewJWTAuthMiddleware(secret string, userRepo repositories.UserRepository) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		secret:   secret,
		userRepo: userRepo,
	}
}

// AuthMiddleware returns a Gin middleware function validating the bearer token
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authorization header missing or malformed",
			})
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(m.secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		// Set user information in context
		c.Set("user_id", claims.UserID)
		c.Set("user_role", models.UserRole(claims.Role))

		// Load the full record lazily used by profile-style endpoints.
		if user, err := m.userRepo.GetByID(c.Request.Context(), claims.UserID); err == nil {
			c.Set("user", user)
		}

		c.Next()
	}
}

// RequireRoleMiddleware checks if user has required role
func (m *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "user role not found in context",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole || role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}
