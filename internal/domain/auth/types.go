package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role represents an application authorization role.
// The string form matches the backend's wire format (ROLE_* identifiers)
// for easy persistence and round-tripping.
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleDoctor  Role = "ROLE_DOCTOR"
	RolePatient Role = "ROLE_PATIENT"
)

// Roles lists every role the application knows about, in a stable order.
// Configuration completeness checks iterate this slice.
func Roles() []Role {
	return []Role{RoleAdmin, RoleDoctor, RolePatient}
}

// Known reports whether r is one of the declared application roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Identity is the authenticated principal as returned by the backend's
// login endpoint.
type Identity struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Session is the record we persist for an authenticated user. ID is an
// opaque session identifier carried in the browser cookie; Token is the
// backend-issued bearer credential attached to outbound API calls.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session's token expiry has passed.
func (s Session) IsExpired() bool { return !time.Now().Before(s.ExpiresAt) }

// TokenClaims carries the claims read from an access token.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// DecodeTokenClaims reads the registered claims embedded in a JWT access
// token without verifying its signature. The backend is the sole verifier;
// the client only needs the expiry and subject for session freshness.
// A token with no exp claim is treated as malformed.
func DecodeTokenClaims(token string) (TokenClaims, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, err
	}
	if claims.ExpiresAt == nil {
		return TokenClaims{}, jwt.ErrTokenRequiredClaimMissing
	}
	return TokenClaims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
