package httpx

import (
	"net/http"
	"strings"

	"github.com/carebridge/hms-ui/internal/domain/nav"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
)

// LoginSubmit handles the login form.
// POST /login with form fields username and password.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	session, err := h.Sessions.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginPage(w, r, loginPageData{
			Username: username,
			Error:    apperrors.UserMessage(err),
		})
		return
	}

	h.setSessionCookie(w, r, session)
	http.Redirect(w, r, nav.LandingPath(session.Role), http.StatusSeeOther)
}

// Logout ends the session and returns the visitor to the login page.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	http.Redirect(w, r, nav.PublicEntryPath, http.StatusSeeOther)
}

// AuthStatus returns the current authentication status.
// GET /auth/status.
func (h *UIHandlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":       session.Identity.ID,
			"username": session.Identity.Username,
			"name":     session.Identity.DisplayName,
			"role":     session.Role,
		},
		"expires_at": session.ExpiresAt,
	})
}
