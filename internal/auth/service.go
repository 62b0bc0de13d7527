// Package auth registers users, verifies credentials and issues and checks bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/crucial707/todo-api/internal/apperr"
	"github.com/crucial707/todo-api/internal/metrics"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// MaxUsernameLen matches the users.username column width.
const MaxUsernameLen = 50

// UserStore is the subset of the credential store the service needs.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration

	// HashCost is the bcrypt cost used by Register.
	HashCost int
	now      func() time.Time
}

func NewService(users UserStore, secret []byte, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		secret:   secret,
		ttl:      ttl,
		HashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates a user with a bcrypt hash of password. It does not log the user in.
func (s *Service) Register(ctx context.Context, username, password string) (int, error) {
	if username == "" || password == "" {
		return 0, apperr.Validation("Missing fields")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return 0, apperr.Validation(fmt.Sprintf("Username must be at most %d characters", MaxUsernameLen))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, apperr.Validation("Password must be at most 72 bytes")
		}
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return 0, apperr.Conflict("User already exists")
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	metrics.IncRegistrations()
	return user.ID, nil
}

// Login verifies the credentials and returns a signed token for the user.
// Unknown users and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		metrics.IncLogins(metrics.OutcomeFailure)
		return "", apperr.Auth("Invalid login", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.IncLogins(metrics.OutcomeFailure)
			return "", apperr.Auth("Invalid login", nil)
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.IncLogins(metrics.OutcomeFailure)
		return "", apperr.Auth("Invalid login", err)
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.IncLogins(metrics.OutcomeSuccess)
	return token, nil
}
