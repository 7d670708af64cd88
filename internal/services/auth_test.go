package services_test

import (
	"testing"
	"time"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/config"
	"househand/backend/internal/models"
	"househand/backend/internal/services"

	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		BCryptCost:      bcrypt.MinCost,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupServiceDB(t)
	registerSvc := services.NewRegisterService(bcrypt.MinCost)
	authSvc := services.NewAuthService(testAuthConfig())

	user, err := registerSvc.RegisterUser(db, services.RegistrationRequest{
		Email:    "Jean@Example.com",
		Password: "long-enough-password",
		FullName: "Jean M",
		UserType: models.UserTypeHelper,
	})
	if err != nil {
		t.Fatalf("Expected registration to succeed, got: %v", err)
	}

	if user.Email != "jean@example.com" {
		t.Errorf("Expected email to be normalized, got %s", user.Email)
	}
	if user.Password == "long-enough-password" {
		t.Error("Expected password to be hashed")
	}

	loggedIn, err := authSvc.LoginUser(db, "jean@example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Expected login to succeed, got: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Error("Expected login to return the registered profile")
	}

	if _, err := authSvc.LoginUser(db, "jean@example.com", "wrong"); !apperrors.IsKind(err, apperrors.KindAuthentication) {
		t.Errorf("Expected authentication error for wrong password, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupServiceDB(t)
	svc := services.NewRegisterService(bcrypt.MinCost)

	req := services.RegistrationRequest{
		Email:    "dup@example.com",
		Password: "long-enough-password",
		FullName: "First",
		UserType: models.UserTypeClient,
	}
	if _, err := svc.RegisterUser(db, req); err != nil {
		t.Fatalf("Expected first registration to succeed, got: %v", err)
	}

	if _, err := svc.RegisterUser(db, req); !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Errorf("Expected conflict for duplicate email, got %v", err)
	}
}

func TestRegisterRejectsUnknownUserType(t *testing.T) {
	db := setupServiceDB(t)
	svc := services.NewRegisterService(bcrypt.MinCost)

	_, err := svc.RegisterUser(db, services.RegistrationRequest{
		Email:    "a@example.com",
		Password: "long-enough-password",
		FullName: "A",
		UserType: "admin",
	})
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestTokenRefreshRotation(t *testing.T) {
	db := setupServiceDB(t)
	registerSvc := services.NewRegisterService(bcrypt.MinCost)
	authSvc := services.NewAuthService(testAuthConfig())

	user, err := registerSvc.RegisterUser(db, services.RegistrationRequest{
		Email:    "rotate@example.com",
		Password: "long-enough-password",
		FullName: "R",
		UserType: models.UserTypeClient,
	})
	if err != nil {
		t.Fatalf("Expected registration to succeed, got: %v", err)
	}

	_, refresh, err := authSvc.GenerateToken(db, user)
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got: %v", err)
	}

	access2, refresh2, err := authSvc.RefreshToken(db, refresh)
	if err != nil {
		t.Fatalf("Expected refresh to succeed, got: %v", err)
	}
	if access2 == "" || refresh2 == "" {
		t.Error("Expected fresh token pair")
	}

	// the consumed refresh token is gone
	if _, _, err := authSvc.RefreshToken(db, refresh); !apperrors.IsKind(err, apperrors.KindAuthentication) {
		t.Errorf("Expected consumed refresh token to be rejected, got %v", err)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	db := setupServiceDB(t)
	registerSvc := services.NewRegisterService(bcrypt.MinCost)
	authSvc := services.NewAuthService(testAuthConfig())

	user, _ := registerSvc.RegisterUser(db, services.RegistrationRequest{
		Email:    "out@example.com",
		Password: "long-enough-password",
		FullName: "O",
		UserType: models.UserTypeClient,
	})

	_, refresh, err := authSvc.GenerateToken(db, user)
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got: %v", err)
	}

	if err := authSvc.Logout(db, user.ID); err != nil {
		t.Fatalf("Expected logout to succeed, got: %v", err)
	}

	if _, _, err := authSvc.RefreshToken(db, refresh); !apperrors.IsKind(err, apperrors.KindAuthentication) {
		t.Errorf("Expected revoked refresh token to be rejected, got %v", err)
	}
}
