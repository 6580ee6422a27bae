package hms

import (
	"context"
	"net/http"
	"net/url"

	apperrors "github.com/carebridge/hms-ui/internal/errors"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
)

// LoginResponse is the backend's answer to a successful credential exchange.
type LoginResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a token-bearing profile.
// Invalid credentials surface as an authentication_failed error with no
// session state retained.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"username": username, "password": password},
	}, &out)
	if err != nil {
		// The login endpoint answers 401 for bad credentials; that is not a
		// session expiry.
		if apperrors.IsSessionExpired(err) {
			return LoginResponse{}, apperrors.AuthenticationFailed("Login failed. Check username and password.")
		}
		return LoginResponse{}, err
	}
	if out.Token == "" {
		return LoginResponse{}, apperrors.Backend("The server returned no access token.")
	}
	return out, nil
}

// RegisterRequest is the payload for creating a new account. Specialization
// is only meaningful for doctor registrations.
type RegisterRequest struct {
	Username       string          `json:"username"`
	Password       string          `json:"password"`
	FullName       string          `json:"fullName"`
	MobileNumber   string          `json:"mobileNumber"`
	Role           domainauth.Role `json:"role"`
	Specialization string          `json:"specialization,omitempty"`
}

// Register creates a new account. Validation feedback from the backend
// surfaces as a validation error with per-field messages where available.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   req,
	}, nil)
}

// RequestPasswordOTP asks the backend to send a reset OTP for the account.
func (c *Client) RequestPasswordOTP(ctx context.Context, username string) error {
	q := url.Values{}
	q.Set("username", username)
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/password/request-otp",
		query:  q,
	}, nil)
}

// ResetPassword completes the OTP reset flow.
func (c *Client) ResetPassword(ctx context.Context, username, otp, newPassword string) error {
	q := url.Values{}
	q.Set("username", username)
	q.Set("otp", otp)
	q.Set("newPassword", newPassword)
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/password/reset",
		query:  q,
	}, nil)
}
