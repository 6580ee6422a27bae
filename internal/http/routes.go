package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/carebridge/hms-ui/config"
	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions     SessionsService
	API          *hms.Client
	SessionCfg   config.SessionConfig
	CookieDomain string
	TemplateFS   fs.FS // Filesystem containing templates (required)
	StaticFS     fs.FS // Filesystem containing static assets (optional)
	IsDev        bool
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. All routes share the
// session loader; role requirements are declared per route group.
func NewRouter(services RouterServices) (http.Handler, error) {
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: services.TemplateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		return nil, err
	}

	h := &UIHandlers{
		T:            renderer,
		Sessions:     services.Sessions,
		Appointments: services.API,
		Records:      services.API,
		Account:      services.API,
		SessionCfg:   services.SessionCfg,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
	}

	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.StaticFS != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(services.StaticFS)))
	}

	registerPublicRoutes(mux, h)
	registerGuardedRoutes(mux, h)

	// Everything else falls through to the catch-all on "GET /".
	return SessionLoader(services.Sessions, services.SessionCfg.CookieName)(mux), nil
}

// registerPublicRoutes wires routes reachable without a session.
func registerPublicRoutes(mux *http.ServeMux, h *UIHandlers) {
	// "GET /" doubles as the catch-all; unknown paths bounce to the entry page.
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			h.NotFound(w, r)
			return
		}
		h.Index(w, r)
	})
	mux.HandleFunc("POST /login", h.LoginSubmit)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /register", h.RegisterPage)
	mux.HandleFunc("POST /register", h.RegisterSubmit)
	mux.HandleFunc("GET /forgot-password", h.ForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", h.ForgotPasswordSubmit)
	mux.HandleFunc("GET /auth/status", h.AuthStatus)
}

// registerGuardedRoutes wires routes behind session and role requirements.
func registerGuardedRoutes(mux *http.ServeMux, h *UIHandlers) {
	anyRole := RequireRoles(domainauth.RoleAdmin, domainauth.RoleDoctor, domainauth.RolePatient)
	adminOnly := RequireRoles(domainauth.RoleAdmin)
	doctorOnly := RequireRoles(domainauth.RoleDoctor)
	patientOnly := RequireRoles(domainauth.RolePatient)
	bookers := RequireRoles(domainauth.RoleAdmin, domainauth.RolePatient)
	recordReaders := RequireRoles(domainauth.RoleAdmin, domainauth.RoleDoctor)

	mux.Handle("GET /dashboard", RequireSession()(http.HandlerFunc(h.Dashboard)))

	mux.Handle("GET /admin/dashboard", adminOnly(http.HandlerFunc(h.AdminDashboard)))
	mux.Handle("GET /doctor/dashboard", doctorOnly(http.HandlerFunc(h.DoctorDashboard)))
	mux.Handle("GET /patient/dashboard", patientOnly(http.HandlerFunc(h.PatientDashboard)))

	mux.Handle("GET /appointments/list", anyRole(http.HandlerFunc(h.AppointmentsList)))
	mux.Handle("GET /appointments/book", bookers(http.HandlerFunc(h.AppointmentBookForm)))
	mux.Handle("POST /appointments/book", bookers(http.HandlerFunc(h.AppointmentBookSubmit)))
	mux.Handle("POST /appointments/{id}/status", doctorOnly(http.HandlerFunc(h.AppointmentStatusUpdate)))

	mux.Handle("GET /records/list", anyRole(http.HandlerFunc(h.RecordsList)))
	mux.Handle("GET /records/view/{recordId}", recordReaders(http.HandlerFunc(h.RecordView)))
	mux.Handle("GET /records/create/{patientId}/{doctorId}", doctorOnly(http.HandlerFunc(h.RecordCreateForm)))
	mux.Handle("POST /records/create/{patientId}/{doctorId}", doctorOnly(http.HandlerFunc(h.RecordCreateSubmit)))
}
