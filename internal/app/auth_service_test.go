package app

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/jwtutil"
	"gopherblog/internal/repository"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsnName := strings.NewReplacer("/", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnName)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), testSecret, time.Hour)
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newAuthService(t)

	result, err := svc.Register(RegisterInput{
		Name:                 "Ann",
		Email:                "ann@x.com",
		Password:             "pw123456",
		PasswordConfirmation: "pw123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.ID == 0 {
		t.Fatalf("expected persisted user id")
	}
	if result.User.Password == "pw123456" {
		t.Fatalf("password stored in plain text")
	}

	claims, err := jwtutil.ParseToken(testSecret, result.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("token bound to user %d, want %d", claims.UserID, result.User.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123456"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing confirmation, got %v", err)
	}

	_, err = svc.Register(RegisterInput{
		Name:                 "Ann",
		Email:                "ann@x.com",
		Password:             "pw123456",
		PasswordConfirmation: "different",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected password mismatch, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	input := RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123456", PasswordConfirmation: "pw123456"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	input.Name = "Impostor"
	if _, err := svc.Register(input); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected duplicate user, got %v", err)
	}

	stored, err := userRepo.GetByEmail("ann@x.com")
	if err != nil || stored == nil {
		t.Fatalf("lookup first user: %v", err)
	}
	if stored.Name != "Ann" {
		t.Fatalf("first row changed by failed duplicate: %q", stored.Name)
	}
}

func TestLoginDoesNotLeakWhichFieldFailed(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Register(RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "pw123456", PasswordConfirmation: "pw123456",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Login(LoginInput{Email: "ann@x.com", Password: "nope"})
	_, unknownEmail := svc.Login(LoginInput{Email: "ghost@x.com", Password: "pw123456"})

	if !errors.Is(wrongPassword, ErrInvalidCredential) {
		t.Fatalf("wrong password: got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredential) {
		t.Fatalf("unknown email: got %v", unknownEmail)
	}
}

func TestLoginValidation(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Login(LoginInput{Email: "ann@x.com"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := newAuthService(t)
	result, err := svc.Register(RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "pw123456", PasswordConfirmation: "pw123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateProfile(UpdateProfileInput{UserID: result.User.ID, Name: "Anna"})
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.Name != "Anna" || updated.Email != "ann@x.com" {
		t.Fatalf("unexpected merge result: %q %q", updated.Name, updated.Email)
	}

	_, err = svc.UpdateProfile(UpdateProfileInput{
		UserID:               result.User.ID,
		Password:             "newpass99",
		PasswordConfirmation: "other",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected password mismatch, got %v", err)
	}

	if _, err := svc.UpdateProfile(UpdateProfileInput{
		UserID:               result.User.ID,
		Password:             "newpass99",
		PasswordConfirmation: "newpass99",
	}); err != nil {
		t.Fatalf("update password: %v", err)
	}

	if _, err := svc.Login(LoginInput{Email: "ann@x.com", Password: "newpass99"}); err != nil {
		t.Fatalf("login with rehashed password: %v", err)
	}
	if _, err := svc.Login(LoginInput{Email: "ann@x.com", Password: "pw123456"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestGetProfileMissingUser(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.GetProfile(999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
