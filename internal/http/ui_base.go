package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carebridge/hms-ui/config"
	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	"github.com/carebridge/hms-ui/internal/domain/model"
	"github.com/carebridge/hms-ui/internal/domain/nav"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
	"github.com/carebridge/hms-ui/internal/service"
)

// AppointmentsService is a minimal interface for UI needs.
type AppointmentsService interface {
	MyAppointments(ctx context.Context, filter hms.DateRange) ([]model.Appointment, error)
	TodayAppointments(ctx context.Context) ([]model.Appointment, error)
	BookAppointment(ctx context.Context, req model.BookAppointmentRequest) (model.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) (model.Appointment, error)
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
}

// RecordsService is a minimal interface for UI needs.
type RecordsService interface {
	MyRecords(ctx context.Context, filter hms.DateRange) ([]model.MedicalRecord, error)
	RecordByID(ctx context.Context, id int64) (model.MedicalRecord, error)
	CreateRecord(ctx context.Context, req model.CreateRecordRequest) (model.MedicalRecord, error)
}

// AccountService is a minimal interface for registration and password reset.
type AccountService interface {
	Register(ctx context.Context, req hms.RegisterRequest) error
	RequestPasswordOTP(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, username, otp, newPassword string) error
}

// SessionsService exposes the session operations the UI needs.
type SessionsService interface {
	Login(ctx context.Context, username, password string) (domainauth.Session, error)
	Restore(ctx context.Context, sessionID string) (domainauth.Session, bool)
	Logout(ctx context.Context, sessionID string) error
}

// Compile-time interface assertions to ensure concrete types satisfy their UI interfaces.
var (
	_ AppointmentsService = (*hms.Client)(nil)
	_ RecordsService      = (*hms.Client)(nil)
	_ AccountService      = (*hms.Client)(nil)
	_ SessionsService     = (*service.SessionService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	Sessions     SessionsService
	Appointments AppointmentsService
	Records      RecordsService
	Account      AccountService
	SessionCfg   config.SessionConfig
	CookieDomain string
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// renderPage renders a page template inside the layout; render failures
// were already logged by the renderer, so only the status is left to send.
func (h *UIHandlers) renderPage(w http.ResponseWriter, page string, data map[string]any) {
	if err := h.T.RenderPage(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleBackendError deals with a failed backend fetch. An expired or
// rejected token ends the session and sends the visitor back to the login
// page; anything else is reported back so the page renders with a message.
// Returns true when the response has been written.
func (h *UIHandlers) handleBackendError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}

	if apperrors.IsSessionExpired(err) {
		h.endSession(w, r)
		http.Redirect(w, r, nav.PublicEntryPath, http.StatusSeeOther)
		return true
	}

	h.logger().ErrorContext(r.Context(), "backend request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	return false
}

// endSession removes the stored session and expires its cookie.
func (h *UIHandlers) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.SessionCfg.CookieName); err == nil {
		if logoutErr := h.Sessions.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearSessionCookie(w, r)
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *UIHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.SessionCfg.CookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie expires the session cookie. It mirrors key attributes
// (Secure, Path, Domain, SameSite) used when setting cookies to maximize
// compatibility across browsers during deletion.
func (h *UIHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.SessionCfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UIHandlers) cookieSecure(r *http.Request) bool {
	if !h.SessionCfg.CookieSecure {
		return false
	}
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// statusBadgeClass maps an appointment status to its badge CSS class.
func statusBadgeClass(status model.AppointmentStatus) string {
	switch status {
	case model.AppointmentScheduled:
		return "badge badge-scheduled"
	case model.AppointmentCompleted:
		return "badge badge-completed"
	case model.AppointmentCancelled:
		return "badge badge-cancelled"
	default:
		return "badge"
	}
}
