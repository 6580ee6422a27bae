package httpx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
)

// stubRestorer restores sessions from a fixed map.
type stubRestorer map[string]domainauth.Session

func (s stubRestorer) Restore(_ context.Context, id string) (domainauth.Session, bool) {
	sess, ok := s[id]
	return sess, ok
}

// captureDoer records the last outbound request and answers with an empty
// JSON array.
type captureDoer struct {
	lastReq *http.Request
}

func (d *captureDoer) Do(req *http.Request) (*http.Response, error) {
	d.lastReq = req
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("[]")),
	}, nil
}

func activeTestSession(role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		ID:        "sess-1",
		Identity:  domainauth.Identity{ID: 1, Username: "alice", DisplayName: "Alice"},
		Role:      role,
		Token:     "token-abc",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestSessionLoader_NoCookiePassesThroughUnauthenticated(t *testing.T) {
	var sawSession bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawSession = GetUserSessionFromContext(r.Context())
	})

	handler := SessionLoader(stubRestorer{}, "hms_session")(inner)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.False(t, sawSession)
}

func TestSessionLoader_UnknownSessionIDPassesThroughUnauthenticated(t *testing.T) {
	var sawSession bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawSession = GetUserSessionFromContext(r.Context())
	})

	handler := SessionLoader(stubRestorer{}, "hms_session")(inner)
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "hms_session", Value: "gone"})
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.False(t, sawSession)
}

func TestSessionLoader_ActiveSessionCarriesTokenToBackendCalls(t *testing.T) {
	doer := &captureDoer{}
	api, err := hms.NewClient(doer, "http://backend.test")
	require.NoError(t, err)

	sess := activeTestSession(domainauth.RolePatient)
	restorer := stubRestorer{sess.ID: sess}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := GetUserSessionFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, sess.ID, got.ID)
		assert.Equal(t, domainauth.RolePatient, got.Role)

		_, apiErr := api.MyAppointments(r.Context(), hms.DateRange{})
		require.NoError(t, apiErr)
	})

	handler := SessionLoader(restorer, "hms_session")(inner)
	r := httptest.NewRequest("GET", "/appointments/list", nil)
	r.AddCookie(&http.Cookie{Name: "hms_session", Value: sess.ID})
	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, doer.lastReq)
	assert.Equal(t, "Bearer token-abc", doer.lastReq.Header.Get("Authorization"))
}

func TestRequireSession_RedirectsAnonymousToEntryPage(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a session")
	})

	w := httptest.NewRecorder()
	RequireSession()(inner).ServeHTTP(w, httptest.NewRequest("GET", "/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireSession_AllowsActiveSession(t *testing.T) {
	var ran bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true })

	sess := activeTestSession(domainauth.RoleAdmin)
	r := httptest.NewRequest("GET", "/dashboard", nil)
	r = r.WithContext(SetSessionInContext(r.Context(), &sess))

	RequireSession()(inner).ServeHTTP(httptest.NewRecorder(), r)
	assert.True(t, ran)
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name         string
		sessionRole  domainauth.Role
		noSession    bool
		allowed      []domainauth.Role
		wantPass     bool
		wantLocation string
	}{
		{
			name:         "anonymous goes to entry page",
			noSession:    true,
			allowed:      []domainauth.Role{domainauth.RoleAdmin},
			wantLocation: "/",
		},
		{
			name:        "matching role passes",
			sessionRole: domainauth.RoleAdmin,
			allowed:     []domainauth.Role{domainauth.RoleAdmin},
			wantPass:    true,
		},
		{
			name:        "role in multi-role set passes",
			sessionRole: domainauth.RolePatient,
			allowed:     []domainauth.Role{domainauth.RoleAdmin, domainauth.RolePatient},
			wantPass:    true,
		},
		{
			name:         "wrong role lands on own dashboard",
			sessionRole:  domainauth.RoleDoctor,
			allowed:      []domainauth.Role{domainauth.RoleAdmin},
			wantLocation: "/doctor/dashboard",
		},
		{
			name:         "patient cannot reach doctor routes",
			sessionRole:  domainauth.RolePatient,
			allowed:      []domainauth.Role{domainauth.RoleDoctor},
			wantLocation: "/patient/dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ran bool
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true })

			r := httptest.NewRequest("GET", "/guarded", nil)
			if !tt.noSession {
				sess := activeTestSession(tt.sessionRole)
				r = r.WithContext(SetSessionInContext(r.Context(), &sess))
			}

			w := httptest.NewRecorder()
			RequireRoles(tt.allowed...)(inner).ServeHTTP(w, r)

			assert.Equal(t, tt.wantPass, ran)
			if !tt.wantPass {
				assert.Equal(t, http.StatusSeeOther, w.Code)
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	Logging(logger)(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))

	logLine := buf.String()
	assert.Contains(t, logLine, `"status":404`)
	assert.Contains(t, logLine, `"path":"/nope"`)
	assert.Contains(t, logLine, `"method":"GET"`)
}

func TestLogging_DefaultsTo200(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	Logging(logger)(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	Recover(logger)(inner).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "boom")
}
