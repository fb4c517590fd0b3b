package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/martstore/internal/config"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate user failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordMinLength = 8
	svc := NewAuthService(cfg, repository.NewUserRepository(db))
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, token, _, err := svc.Register(RegisterInput{
		Name:     "张三",
		Email:    "Zhang.San@Example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("register should issue token")
	}
	if user.Email != "zhang.san@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.PasswordHash == "secret-pass" {
		t.Fatalf("password must be hashed")
	}

	logged, token, _, err := svc.Login("zhang.san@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("login should return the registered user with a token")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Name: "a", Email: "a@example.com", Password: "secret-pass"}); !errors.Is(err, ErrNameTooShort) {
		t.Fatalf("short name want ErrNameTooShort got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Name: "张三", Email: "not-an-email", Password: "secret-pass"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Name: "张三", Email: "a@example.com", Password: "short"}); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password want ErrPasswordTooShort got %v", err)
	}

	if _, _, _, err := svc.Register(RegisterInput{Name: "张三", Email: "a@example.com", Password: "secret-pass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Name: "李四", Email: "A@Example.com", Password: "secret-pass"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Name: "张三", Email: "a@example.com", Password: "secret-pass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("a@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("missing@example.com", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("missing user want ErrInvalidCredentials got %v", err)
	}

	if err := db.Model(&models.User{}).Where("email = ?", "a@example.com").Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "secret-pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestLogoutBumpsTokenVersion(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, token, _, err := svc.Register(RegisterInput{Name: "张三", Email: "a@example.com", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}

	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	reloaded, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.TokenVersion != claims.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", claims.TokenVersion+1, reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatalf("token invalid before should be set")
	}
}
