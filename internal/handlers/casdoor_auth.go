package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/config"
	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/services"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
)

// CasdoorAuthHandler handles the university single sign-on flow. The
// OAuth callback exchanges the code with Casdoor, upserts the external
// identity into the local store and hands back portal tokens so the
// rest of the API only ever sees locally issued JWTs.
type CasdoorAuthHandler struct {
	BaseHandler
	client      *casdoorsdk.Client
	authService services.AuthService
}

func NewCasdoorAuthHandler(cfg config.CasdoorConfig, authService services.AuthService, logger utils.Logger) *CasdoorAuthHandler {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &CasdoorAuthHandler{
		BaseHandler: NewBaseHandler(logger),
		client:      client,
		authService: authService,
	}
}

// Callback completes the OAuth code exchange
func (h *CasdoorAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "authorization code missing",
		})
		return
	}

	h.LogRequest(c, "Completing OAuth callback")

	token, err := h.client.GetOAuthToken(code, state)
	if err != nil {
		h.LogError(c, err, "OAuth code exchange failed")
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "failed to exchange authorization code",
		})
		return
	}

	claims, err := h.client.ParseJwtToken(token.AccessToken)
	if err != nil {
		h.LogError(c, err, "Failed to parse Casdoor token")
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid identity token",
		})
		return
	}

	user, err := h.authService.SyncOAuthUser(c.Request.Context(), &services.OAuthIdentity{
		OpenID:   claims.User.Id,
		FullName: claims.User.DisplayName,
		Email:    claims.User.Email,
		Role:     mapCasdoorRole(claims.User.Type),
	})
	if err != nil {
		h.LogError(c, err, "Failed to sync OAuth user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to sync user account",
		})
		return
	}

	resp, err := h.authService.TokensFor(c.Request.Context(), user)
	if err != nil {
		h.LogError(c, err, "Failed to issue portal tokens")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to issue tokens",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// mapCasdoorRole maps the Casdoor user type to a portal role
func mapCasdoorRole(casdoorType string) models.UserRole {
	switch strings.ToLower(casdoorType) {
	case "admin", "administrator":
		return models.RoleAdmin
	case "staff", "employee", "supervisor":
		return models.RoleStaff
	case "student", "normal-user":
		return models.RoleStudent
	default:
		return models.RoleStudent
	}
}
