// Package session tracks the current authenticated identity.
package session

import (
	"context"
	"sync"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

// AuthClient performs the actual login/register calls. Errors it returns are
// expected to carry a normalized human-readable message.
type AuthClient interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
}

// Persister mirrors the session slice to durable storage, best-effort.
type Persister interface {
	SaveSession(s domain.Session)
	ClearSession()
}

type Status int

const (
	Anonymous Status = iota
	Authenticating
	Authenticated
	AnonymousWithError
)

// Store is the auth state machine: anonymous -> authenticating ->
// authenticated | anonymous-with-error. Logout returns to anonymous from any
// state. Failures are recorded as a message in state, never panics.
type Store struct {
	mu            sync.Mutex
	user          *domain.User
	authenticated bool
	loading       bool
	errMsg        string

	auth    AuthClient
	persist Persister
}

func New(auth AuthClient, persist Persister) *Store {
	return &Store{auth: auth, persist: persist}
}

// Login authenticates against the backend. The outcome is recorded in state;
// the error is also returned for callers that report it directly.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) error {
	s.begin()
	user, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.fail(err)
		return err
	}
	s.succeed(user)
	return nil
}

// Register creates an account and, like the login flow, authenticates on success.
func (s *Store) Register(ctx context.Context, reg domain.Registration) error {
	s.begin()
	user, err := s.auth.Register(ctx, reg)
	if err != nil {
		s.fail(err)
		return err
	}
	s.succeed(user)
	return nil
}

// Logout clears user and error and drops the persisted session. The cart is
// deliberately untouched: it lives on its own persistence path.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authenticated = false
	s.loading = false
	s.errMsg = ""
	if s.persist != nil {
		s.persist.ClearSession()
	}
}

// ClearError drops the stored error without changing authentication status.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Restore rehydrates a persisted session without writing anything back.
func (s *Store) Restore(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.User == nil || !sess.IsAuthenticated {
		return
	}
	u := *sess.User
	s.user = &u
	s.authenticated = true
}

func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.loading:
		return Authenticating
	case s.authenticated:
		return Authenticated
	case s.errMsg != "":
		return AnonymousWithError
	default:
		return Anonymous
	}
}

// IsAdmin reports whether the current user holds the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated && s.user != nil && s.user.Role == domain.RoleAdmin
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg = ""
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errMsg = err.Error()
}

func (s *Store) succeed(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.user = &user
	s.authenticated = true
	s.errMsg = ""
	if s.persist != nil {
		s.persist.SaveSession(domain.Session{User: &user, IsAuthenticated: true})
	}
}
