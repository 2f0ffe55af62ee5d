package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/jwtutil"
	"gopherblog/internal/repository"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrDuplicateUser     = errors.New("user already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUserNotFound      = errors.New("user not found")
)

// bcryptCost mirrors the hashing strength registered users were
// created with; raising it only affects newly written hashes.
const bcryptCost = 8

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID               uint
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.PasswordConfirmation == "" {
		return nil, ErrValidation
	}
	if input.Password != input.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrValidation
	}

	user, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password answer identically.
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile merges the supplied fields over the stored row; empty
// fields keep their current value. A new password must be confirmed
// and is rehashed before storage.
func (s *AuthService) UpdateProfile(input UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}
	if input.Password != "" {
		if input.Password != input.PasswordConfirmation {
			return nil, ErrPasswordMismatch
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
