package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	"github.com/carebridge/hms-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
)

// MockAuthProvider simulates the hospital backend's login endpoint for tests.
type MockAuthProvider struct {
	AuthenticateFunc func(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error)

	// Deterministic values for predictable testing
	Token       string
	DefaultUser domainauth.Identity
	Role        domainauth.Role
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		Token: "mock-token",
		DefaultUser: domainauth.Identity{
			ID:          1,
			Username:    "mock.user",
			DisplayName: "Mock User",
		},
		Role: domainauth.RolePatient,
	}
}

func (m *MockAuthProvider) Authenticate(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, creds)
	}

	return ports.AuthResult{
		Token:    m.Token,
		Identity: m.DefaultUser,
		Role:     m.Role,
	}, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are currently stored.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// SeedSession stores a ready-made session and returns it, for tests that
// need an authenticated starting point.
func (m *MemorySessionStore) SeedSession(id string, role domainauth.Role, token string, expiresAt time.Time) domainauth.Session {
	sess := domainauth.Session{
		ID: id,
		Identity: domainauth.Identity{
			ID:          1,
			Username:    "mock.user",
			DisplayName: "Mock User",
		},
		Role:      role,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	m.sessions[id] = sess
	return sess
}
