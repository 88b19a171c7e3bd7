package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"guestbook/internal/models"
	"guestbook/internal/store"
	"guestbook/internal/utils"
)

const (
	MinPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

// UserRepository is the persistence the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	LoginTaken(ctx context.Context, login string, excludeID uint) (bool, error)
	Update(ctx context.Context, id uint, login, passwordHash string) error
}

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

type Registration struct {
	Login           string
	Password        string
	ConfirmPassword string
}

// Register creates an account. It does not sign the new user in.
func (s *AuthService) Register(ctx context.Context, r Registration) (*models.User, error) {
	login := strings.TrimSpace(r.Login)
	if login == "" || r.Password == "" || r.ConfirmPassword == "" {
		return nil, ErrFieldsRequired
	}
	if r.Password != r.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := checkPasswordLength(r.Password); err != nil {
		return nil, err
	}

	taken, err := s.users.LoginTaken(ctx, login, 0)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, ErrLoginTaken
	}

	hash, err := utils.HashPassword(r.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &models.User{Login: login, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrLoginTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Authenticate checks credentials. An unknown login and a wrong password
// both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrFieldsRequired
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

type ProfileUpdate struct {
	Login           string
	Password        string
	ConfirmPassword string
}

// UpdateProfile renames the user and, when a new password is given, rehashes
// it. It returns the login now stored.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, u ProfileUpdate) (string, error) {
	login := strings.TrimSpace(u.Login)
	if login == "" {
		return "", ErrLoginRequired
	}
	if u.Password != "" {
		if u.Password != u.ConfirmPassword {
			return "", ErrPasswordMismatch
		}
		if err := checkPasswordLength(u.Password); err != nil {
			return "", err
		}
	}

	taken, err := s.users.LoginTaken(ctx, login, userID)
	if err != nil {
		return "", fmt.Errorf("update profile: %w", err)
	}
	if taken {
		return "", ErrLoginTaken
	}

	var hash string
	if u.Password != "" {
		hash, err = utils.HashPassword(u.Password)
		if err != nil {
			return "", fmt.Errorf("update profile: %w", err)
		}
	}

	if err := s.users.Update(ctx, userID, login, hash); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", ErrLoginTaken
		}
		return "", fmt.Errorf("update profile: %w", err)
	}
	return login, nil
}

func checkPasswordLength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
