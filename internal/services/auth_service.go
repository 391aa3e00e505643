package services

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/lunarialabs/lunaria/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLength = 8

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// HashPassword bcrypt-hashes a password after enforcing the minimum length.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail lowercases and trims an email and validates its shape.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func (service *AuthService) Register(email string, password string, name string) (models.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	passwordHash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	user := models.User{
		Email:        normalized,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		CreatedAt:    time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(userID, passwordHash)
}
