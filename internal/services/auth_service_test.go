package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/repositories/flatfile"
	"github.com/HUSC-F-2025/housing-service/internal/session"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
	"github.com/HUSC-F-2025/housing-service/internal/validator"
)

func newAuthFixture(t *testing.T, sessions *session.Store) (AuthService, repositories.Repository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := flatfile.NewFlatFileRepository(flatfile.RepositoryConfig{
		StorePath: filepath.Join(t.TempDir(), "housing.json"),
		Logger:    logger,
	})
	service := NewAuthService(repo, sessions, logger, validator.New(), "test-secret", 30*time.Minute, bcrypt.MinCost)
	return service, repo
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Username:    "student1",
		Password:    "correct-horse",
		FullName:    "أحمد محمود",
		Email:       "ahmed@example.edu",
		PhoneNumber: "01012345678",
		NationalID:  "30303030303030",
		StudentID:   "20250001",
	}
}

func TestAuthService_Register(t *testing.T) {
	service, repo := newAuthFixture(t, nil)
	ctx := context.Background()

	resp, err := service.Register(ctx, validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.AccessToken == "" {
		t.Error("expected an access token")
	}
	if resp.User.Role != models.RoleStudent {
		t.Errorf("expected student role, got %s", resp.User.Role)
	}

	// The stored hash must verify and must not be the plaintext.
	stored, err := repo.User().GetByUsername(ctx, "student1")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if stored.PasswordHash == "correct-horse" {
		t.Error("password stored in plaintext")
	}
	if !utils.VerifyPassword(stored.PasswordHash, "correct-horse") {
		t.Error("stored hash does not verify the password")
	}

	// The issued token must parse with the same secret.
	claims, err := utils.ParseAccessToken("test-secret", resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Role != string(models.RoleStudent) {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	service, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	if _, err := service.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	req := validRegisterRequest()
	req.Email = "other@example.edu"
	if _, err := service.Register(ctx, req); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"bad phone", func(r *RegisterRequest) { r.PhoneNumber = "123" }},
		{"bad national id", func(r *RegisterRequest) { r.NationalID = "123" }},
		{"latin name", func(r *RegisterRequest) { r.FullName = "Ahmed" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newAuthFixture(t, nil)
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := service.Register(context.Background(), req)
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("expected validation errors, got %v", err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	service, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	if _, err := service.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		resp, err := service.Login(ctx, &LoginRequest{Username: "student1", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.User.LastSignedIn == nil {
			t.Error("expected sign-in timestamp")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := service.Login(ctx, &LoginRequest{Username: "student1", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		// Same error as a wrong password; no account enumeration.
		if _, err := service.Login(ctx, &LoginRequest{Username: "ghost", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_RefreshRotation(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	service, _ := newAuthFixture(t, sessions)
	ctx := context.Background()

	registered, err := service.Register(ctx, validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if registered.RefreshToken == "" {
		t.Fatal("expected a refresh token with sessions configured")
	}

	refreshed, err := service.Refresh(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("refresh must rotate the token")
	}

	// The old token is revoked.
	if _, err := service.Refresh(ctx, registered.RefreshToken); !errors.Is(err, session.ErrInvalidToken) {
		t.Errorf("expected the old token to be invalid, got %v", err)
	}
}

func TestAuthService_RefreshWithoutSessions(t *testing.T) {
	service, _ := newAuthFixture(t, nil)

	if _, err := service.Refresh(context.Background(), "anything"); !errors.Is(err, session.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken with no session store, got %v", err)
	}
}

func TestAuthService_SyncOAuthUser(t *testing.T) {
	service, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	first, err := service.SyncOAuthUser(ctx, &OAuthIdentity{
		OpenID:   "sso-1",
		FullName: "منى حسن",
		Email:    "mona@example.edu",
		Role:     models.RoleStaff,
	})
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	second, err := service.SyncOAuthUser(ctx, &OAuthIdentity{OpenID: "sso-1", FullName: "منى حسن علي"})
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeated logins must hit the same record, got %d and %d", first.ID, second.ID)
	}
	if second.FullName != "منى حسن علي" {
		t.Errorf("expected updated name, got %s", second.FullName)
	}

	if _, err := service.SyncOAuthUser(ctx, &OAuthIdentity{}); err == nil {
		t.Error("expected an error for a missing open id")
	}
}
