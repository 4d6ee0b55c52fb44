package service

import (
	"errors"
	"testing"

	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(models.DB), &config.JWTConfig{
		SecretKey:   "test-secret",
		ExpireHours: 1,
	})
}

func createLoginUser(t *testing.T, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:         "tester",
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleVolunteer,
		IsActive:     active,
	}
	if err := models.DB.Create(user).Error; err != nil {
		t.Fatalf("create login user: %v", err)
	}
	return user
}

func TestLoginAndTokenRoundtrip(t *testing.T) {
	auth := newTestAuthService(t)
	user := createLoginUser(t, "v@test.local", "secret123", true)

	token, loggedIn, err := auth.Login("v@test.local", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login user: want id %d, got %d", user.ID, loggedIn.ID)
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleVolunteer {
		t.Fatalf("claims: want (%d, %s), got (%d, %s)",
			user.ID, constants.RoleVolunteer, claims.UserID, claims.Role)
	}
}

func TestLoginRejections(t *testing.T) {
	auth := newTestAuthService(t)
	createLoginUser(t, "v@test.local", "secret123", true)
	createLoginUser(t, "off@test.local", "secret123", false)

	if _, _, err := auth.Login("v@test.local", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := auth.Login("nobody@test.local", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: want ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := auth.Login("off@test.local", "secret123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user: want ErrUserDisabled, got %v", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuthService(t)
	if _, err := auth.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: want ErrInvalidToken, got %v", err)
	}
}
