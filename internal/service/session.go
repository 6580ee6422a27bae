package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/hms-ui/config"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
	"github.com/carebridge/hms-ui/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Config   config.SessionConfig
}

// SessionService orchestrates login, restore, and logout flows by
// coordinating the auth provider and session persistence.
type SessionService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	cfg      config.SessionConfig
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	return &SessionService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		cfg:      opts.Config,
	}
}

// Login authenticates credentials against the backend and persists a new
// session. The session expires when the bearer token's expiry claim says
// it does; Config.MaxLifetime, when set, only bounds that further.
func (s *SessionService) Login(ctx context.Context, username, password string) (domainauth.Session, error) {
	if username == "" || password == "" {
		return domainauth.Session{}, apperrors.AuthenticationFailed("Username and password are required.")
	}

	result, err := s.provider.Authenticate(ctx, ports.Credentials{Username: username, Password: password})
	if err != nil {
		return domainauth.Session{}, err
	}

	claims, err := domainauth.DecodeTokenClaims(result.Token)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeBackend, "decode login token")
	}

	expiresAt := claims.ExpiresAt
	if s.cfg.MaxLifetime > 0 {
		if bound := time.Now().Add(s.cfg.MaxLifetime); bound.Before(expiresAt) {
			expiresAt = bound
		}
	}
	if !time.Now().Before(expiresAt) {
		return domainauth.Session{}, apperrors.Backend("login token is already expired")
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		Identity:  result.Identity,
		Role:      result.Role,
		Token:     result.Token,
		ExpiresAt: expiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}

	return session, nil
}

// Restore loads the session behind a session ID and decides whether the
// visitor is still logged in. A missing, expired, or malformed session
// means logged out, never an error; stale entries are deleted on sight.
// The returned bool reports whether the session is active.
func (s *SessionService) Restore(ctx context.Context, sessionID string) (domainauth.Session, bool) {
	if sessionID == "" {
		return domainauth.Session{}, false
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ports.ErrSessionNotFound) {
			slog.WarnContext(ctx, "session lookup failed", "error", err)
		}
		return domainauth.Session{}, false
	}

	if session.IsExpired() || !session.Role.Known() || s.tokenExpired(session.Token) {
		s.discard(ctx, sessionID)
		return domainauth.Session{}, false
	}

	return session, true
}

// Logout removes a session. Logging out an unknown or already-removed
// session succeeds.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// tokenExpired reports whether the bearer token inside a session can no
// longer be presented to the backend. Undecodable tokens count as expired.
func (s *SessionService) tokenExpired(token string) bool {
	claims, err := domainauth.DecodeTokenClaims(token)
	if err != nil {
		return true
	}
	return !time.Now().Before(claims.ExpiresAt)
}

func (s *SessionService) discard(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		slog.WarnContext(ctx, "discard stale session", "error", err)
	}
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	id := uuid.New()
	return id.String()
}
