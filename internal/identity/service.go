// Package identity manages the registered-user directory and the single
// active session marker.
//
// # Usage
//
//	svc := identity.NewService(store, cfg.Auth)
//	user, err := svc.Login("a@example.com", "secret")
package identity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkhart/bookshelf/internal/config"
	"github.com/mkhart/bookshelf/internal/entities"
	"github.com/mkhart/bookshelf/internal/kv"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service handles registration, login, and the active session.
type Service struct {
	store  kv.Store
	config config.Auth
}

// NewService creates a new identity service on top of the given store.
func NewService(store kv.Store, cfg config.Auth) *Service {
	return &Service{store: store, config: cfg}
}

// Register validates the signup form and appends a new user to the
// directory. It does not establish a session; callers route to Login next.
// Validation runs before any write: mismatch, then length, then duplicate
// email (exact, case-sensitive match against the stored value).
func (s *Service) Register(name, email, password, confirmPassword string) (*entities.User, error) {
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	stored := password
	if s.config.HashPasswords {
		stored, err = HashPassword(password, s.config.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	user := entities.User{
		ID:       newID(),
		Name:     name,
		Email:    email,
		Password: stored,
	}
	users = append(users, user)

	if err := s.saveUsers(users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates by exact email match and password verification, sets
// the session to the matched user, and returns it. On failure the session is
// left exactly as it was. Attempts are not limited.
func (s *Service) Login(email, password string) (*entities.User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email && VerifyPassword(password, u.Password) {
			raw, err := json.Marshal(u)
			if err != nil {
				return nil, fmt.Errorf("failed to encode session: %w", err)
			}
			if err := s.store.Set(entities.RecordKeyCurrentUser, raw); err != nil {
				return nil, err
			}
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the session unconditionally. Idempotent.
func (s *Service) Logout() error {
	return s.store.Delete(entities.RecordKeyCurrentUser)
}

// CurrentSession returns the active user, or nil when nobody is logged in.
// Absence means "not authenticated"; it is not an error.
func (s *Service) CurrentSession() (*entities.User, error) {
	raw, err := s.store.Get(entities.RecordKeyCurrentUser)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var user entities.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &user, nil
}

func (s *Service) loadUsers() ([]entities.User, error) {
	raw, err := s.store.Get(entities.RecordKeyUsers)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var users []entities.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user directory: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(users []entities.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user directory: %w", err)
	}
	return s.store.Set(entities.RecordKeyUsers, raw)
}
