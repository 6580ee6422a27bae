package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
)

// Credentials carries a username/password login attempt.
type Credentials struct {
	Username string
	Password string
}

// AuthResult is the outcome of a successful credential exchange.
type AuthResult struct {
	Token    string
	Identity domainauth.Identity
	Role     domainauth.Role
}

// AuthProvider exchanges user credentials for a bearer token and identity.
type AuthProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (AuthResult, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	// Get returns ErrSessionNotFound when no session exists under id.
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionNotFoundError struct{}

func (sessionNotFoundError) Error() string { return "session not found" }

// ErrSessionNotFound is returned by SessionStore implementations when a
// session does not exist.
var ErrSessionNotFound error = sessionNotFoundError{}
