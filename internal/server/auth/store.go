// Package auth is the mock user store behind the login/register endpoints.
// Accounts live in memory only; nothing here is real authentication.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUsernameTaken      = errors.New("Username already exists")
)

// ValidationError carries a field-level message, surfaced to clients as the
// first entry of a validation errors array.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

const (
	usernameMinLength = 3
	passwordMinLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type record struct {
	user     domain.User
	password string
}

// Store is a mutex-guarded in-memory user table seeded with the two demo
// accounts.
type Store struct {
	mu     sync.RWMutex
	users  map[string]record
	nextID int64
}

func NewStore() *Store {
	s := &Store{
		users: map[string]record{
			"admin": {
				user:     domain.User{ID: 1, Username: "admin", Name: "Store Admin", Role: domain.RoleAdmin},
				password: "admin123",
			},
			"client": {
				user:     domain.User{ID: 2, Username: "client", Name: "Demo Client", Role: domain.RoleClient},
				password: "client123",
			},
		},
		nextID: 3,
	}
	return s
}

// Authenticate checks a username/password pair. Unknown user and wrong
// password are indistinguishable to the caller.
func (s *Store) Authenticate(username, password string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[username]
	if !ok || rec.password != password {
		return domain.User{}, ErrInvalidCredentials
	}
	return rec.user, nil
}

// Register creates a new client account. New accounts always get the client
// role; admin access is seeded, never self-assigned.
func (s *Store) Register(reg domain.Registration) (domain.User, error) {
	if err := validate(reg); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[reg.Username]; exists {
		return domain.User{}, ErrUsernameTaken
	}

	user := domain.User{
		ID:       s.nextID,
		Username: reg.Username,
		Name:     reg.Name,
		Role:     domain.RoleClient,
	}
	s.nextID++
	s.users[reg.Username] = record{user: user, password: reg.Password}
	return user, nil
}

func validate(reg domain.Registration) error {
	if len(reg.Username) < usernameMinLength {
		return &ValidationError{
			Field: "username",
			Msg:   fmt.Sprintf("Username must be at least %d characters", usernameMinLength),
		}
	}
	if len(reg.Password) < passwordMinLength {
		return &ValidationError{
			Field: "password",
			Msg:   fmt.Sprintf("Password must be at least %d characters", passwordMinLength),
		}
	}
	if reg.Email != "" && !emailPattern.MatchString(reg.Email) {
		return &ValidationError{Field: "email", Msg: "Email is invalid"}
	}
	return nil
}
