package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"kennel-backend/models"
	"kennel-backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Authenticate verifies credentials against the stored hash. The login
// name matches username or email, case-insensitively. "User not found"
// and "wrong password" are logged apart but surface as the same error.
func (s *AuthService) Authenticate(login, password string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", login, login).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login failed - user not found: %s", login)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	if !admin.IsActive {
		log.Printf("login failed - account disabled: %s", login)
		return nil, ErrAccountDisabled
	}

	if !utils.VerifyPassword(admin.PasswordHash, password) {
		log.Printf("login failed - invalid password for user: %s", login)
		return nil, ErrInvalidCredentials
	}

	// Best effort: a failed last_login write must not fail the login.
	now := time.Now().UTC()
	if err := s.DB.Model(&admin).Update("last_login", now).Error; err != nil {
		log.Printf("warning: could not update last login for %s: %v", admin.Username, err)
	} else {
		admin.LastLogin = &now
	}

	return &admin, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(adminID uint, currentPassword, newPassword string) error {
	var admin models.Admin
	if err := s.DB.First(&admin, adminID).Error; err != nil {
		return fmt.Errorf("lookup admin: %w", err)
	}

	if !utils.VerifyPassword(admin.PasswordHash, currentPassword) {
		return ErrWrongPassword
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.DB.Model(&admin).Update("password_hash", hash).Error
}

// CreateAdmin registers another admin account. Uniqueness is checked up
// front so callers get a field-specific message instead of a raw
// constraint error.
func (s *AuthService) CreateAdmin(username, email, password, fullName string) (*models.Admin, error) {
	var count int64
	s.DB.Model(&models.Admin{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, ErrUsernameTaken
	}
	s.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := models.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &admin, nil
}

// GetAdmin fetches one admin by id.
func (s *AuthService) GetAdmin(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
