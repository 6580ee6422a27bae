package hms

// Package hms is the HTTP client for the HMS backend REST API. The backend
// enforces all authorization server-side; this client only shapes requests,
// attaches the bearer token, and maps failure responses onto the
// application error taxonomy. There is no retry or backoff: a failed call
// surfaces once.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/carebridge/hms-ui/internal/errors"
)

// maxErrorBodyBytes bounds how much of an error response body is read for
// message extraction.
const maxErrorBodyBytes = 64 << 10

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the HMS backend API.
type Client struct {
	client  httpClient
	baseURL *url.URL
}

// NewClient creates a backend client. The base URL is the backend root;
// API paths are joined onto it.
func NewClient(client httpClient, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend base URL %q must be absolute", baseURL)
	}
	return &Client{client: client, baseURL: u}, nil
}

// tokenKey is an unexported context key carrying the bearer token for
// outbound calls.
type tokenKey struct{}

// WithToken returns a child context whose backend calls carry the given
// bearer token. An empty token leaves ctx unchanged.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// tokenFromContext returns the bearer token for outbound calls, if any.
func tokenFromContext(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenKey{}).(string); ok {
		return tok
	}
	return ""
}

// call groups the parameters of a single backend request.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

// do executes the call and decodes a 2xx JSON response into out (out may be
// nil for calls whose body is ignored). Non-2xx responses are mapped via
// decodeError.
func (c *Client) do(ctx context.Context, req call, out any) error {
	u := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if tok := tokenFromContext(ctx); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeBackend, "backend unreachable")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeBackend, "decode backend response")
	}
	return nil
}

// springFieldError is one entry of Spring's default @Valid failure body.
type springFieldError struct {
	Field          string `json:"field"`
	DefaultMessage string `json:"defaultMessage"`
}

// decodeError maps a non-2xx backend response onto the error taxonomy,
// extracting a user-facing message from the body on a best-effort basis.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.SessionExpired("Your session has expired. Please sign in again.")
	case http.StatusForbidden:
		return apperrors.AuthorizationDenied("You do not have access to this resource.")
	case http.StatusNotFound:
		return apperrors.NotFound(extractMessage(raw, "The requested resource was not found."))
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		if fields := extractFieldErrors(raw); len(fields) > 0 {
			return apperrors.Validation("Please fix the errors below.", fields)
		}
		return apperrors.Validation(extractMessage(raw, "The request was rejected by the server."), nil)
	}

	return apperrors.Backend(extractMessage(raw,
		fmt.Sprintf("The server could not complete the request (status %d).", resp.StatusCode)))
}

// extractFieldErrors parses Spring's {"errors":[{field, defaultMessage}]}
// validation body into a field→message map. Returns nil when the body has
// another shape.
func extractFieldErrors(raw []byte) map[string]string {
	var payload struct {
		Errors []springFieldError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Errors) == 0 {
		return nil
	}
	fields := make(map[string]string, len(payload.Errors))
	for _, fe := range payload.Errors {
		if fe.Field == "" {
			continue
		}
		if _, exists := fields[fe.Field]; !exists {
			fields[fe.Field] = fe.DefaultMessage
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// extractMessage pulls a display message out of an error body. The backend
// answers with either a bare string, {"message": ...}, or {"error": ...}.
func extractMessage(raw []byte, fallback string) string {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return fallback
	}

	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil {
		if structured.Message != "" {
			return structured.Message
		}
		if structured.Error != "" {
			return structured.Error
		}
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil && plain != "" {
		return plain
	}

	// Bare non-JSON string bodies ("Error: Username is already taken!").
	if !strings.HasPrefix(body, "{") && !strings.HasPrefix(body, "[") {
		return body
	}
	return fallback
}
