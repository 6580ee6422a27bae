package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	"github.com/carebridge/hms-ui/internal/domain/nav"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionRestorer resolves a session ID from the cookie into an active session.
type SessionRestorer interface {
	Restore(ctx context.Context, sessionID string) (domainauth.Session, bool)
}

// SessionLoader returns a middleware that restores the session behind the
// session cookie. An active session is placed in the request context along
// with its bearer token so downstream backend calls carry it. Requests
// without a valid session pass through unauthenticated.
func SessionLoader(sessions SessionRestorer, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			session, ok := sessions.Restore(r.Context(), cookie.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := SetSessionInContext(r.Context(), &session)
			ctx = hms.WithToken(ctx, session.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession returns a middleware that requires an active session.
// Unauthenticated visitors are sent back to the public entry page.
func RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserSessionFromContext(r.Context()); !ok {
				http.Redirect(w, r, nav.PublicEntryPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles returns a middleware that requires the session's role to be
// one of the allowed roles. Unauthenticated visitors go to the public entry
// page; authenticated visitors with the wrong role go to their own landing
// page rather than an error screen.
func RequireRoles(allowed ...domainauth.Role) func(http.Handler) http.Handler {
	allowedSet := make(map[domainauth.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetUserSessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, nav.PublicEntryPath, http.StatusSeeOther)
				return
			}

			if _, permitted := allowedSet[session.Role]; !permitted {
				http.Redirect(w, r, nav.LandingPath(session.Role), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
