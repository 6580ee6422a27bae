package httpx

import (
	"net/http"
	"strings"

	"github.com/carebridge/hms-ui/internal/clients/hms"
	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
	"github.com/carebridge/hms-ui/internal/domain/nav"
	apperrors "github.com/carebridge/hms-ui/internal/errors"
	"github.com/carebridge/hms-ui/internal/http/validation"
)

// Index serves the public entry page. A visitor with an active session is
// sent straight to their role's landing page instead of seeing the login
// form again.
// GET /.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if session, ok := GetUserSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, nav.LandingPath(session.Role), http.StatusSeeOther)
		return
	}

	var flash string
	if r.URL.Query().Get("registered") == "1" {
		flash = "Registration successful! Please sign in."
	}
	if r.URL.Query().Get("reset") == "1" {
		flash = "Password reset. Please sign in with your new password."
	}

	h.renderLoginPage(w, r, loginPageData{Flash: flash})
}

type loginPageData struct {
	Username string
	Error    string
	Flash    string
}

func (h *UIHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, p loginPageData) {
	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - Sign In",
		PageTitle:   "Sign In",
		CurrentPage: PageLogin,
	}).
		With("Username", p.Username).
		WithFlash(p.Flash)
	if p.Error != "" {
		builder.WithError(p.Error)
	}

	h.renderPage(w, "page-login", builder.Build())
}

// RegisterPage serves the account registration form.
// GET /register.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegisterForm(w, r, hms.RegisterRequest{Role: domainauth.RolePatient}, nil, "")
}

// RegisterSubmit handles the registration form. Validation runs locally
// first; backend field errors from the registration endpoint are merged
// into the same form rendering.
// POST /register.
func (h *UIHandlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	req := hms.RegisterRequest{
		Username:       strings.TrimSpace(r.PostFormValue("username")),
		Password:       r.PostFormValue("password"),
		FullName:       strings.TrimSpace(r.PostFormValue("fullName")),
		MobileNumber:   strings.TrimSpace(r.PostFormValue("mobileNumber")),
		Role:           domainauth.Role(r.PostFormValue("role")),
		Specialization: strings.TrimSpace(r.PostFormValue("specialization")),
	}

	fields := map[string]validation.Field{
		"username": {Value: req.Username, Validators: []validation.Validator{
			validation.RequiredRange("Username", 3, 20),
		}},
		"password": {Value: req.Password, Validators: []validation.Validator{
			validation.RequiredRange("Password", 6, 40),
		}},
		"fullName": {Value: req.FullName, Validators: []validation.Validator{
			validation.Required("Full name", 100),
		}},
		"mobileNumber": {Value: req.MobileNumber, Validators: []validation.Validator{
			validation.Digits("Mobile number", 10),
		}},
		"role": {Value: string(req.Role), Validators: []validation.Validator{
			validation.OneOf("Role", string(domainauth.RolePatient), string(domainauth.RoleDoctor)),
		}},
	}
	if req.Role == domainauth.RoleDoctor {
		fields["specialization"] = validation.Field{Value: req.Specialization, Validators: []validation.Validator{
			validation.Required("Specialization", 100),
		}}
	}

	if errs := validation.Run(fields); len(errs) > 0 {
		h.renderRegisterForm(w, r, req, errs, errMsgFixBelow)
		return
	}

	if err := h.Account.Register(r.Context(), req); err != nil {
		if fieldErrs := apperrors.ValidationFields(err); len(fieldErrs) > 0 {
			h.renderRegisterForm(w, r, req, fieldErrs, errMsgFixBelow)
			return
		}
		h.renderRegisterForm(w, r, req, nil, apperrors.UserMessage(err))
		return
	}

	http.Redirect(w, r, "/?registered=1", http.StatusSeeOther)
}

func (h *UIHandlers) renderRegisterForm(
	w http.ResponseWriter,
	r *http.Request,
	form hms.RegisterRequest,
	fieldErrors map[string]string,
	generalError string,
) {
	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - Create Account",
		PageTitle:   "Create Account",
		CurrentPage: PageRegister,
	}).
		With("Form", form).
		With("IsDoctor", form.Role == domainauth.RoleDoctor).
		WithFieldErrors(fieldErrors)
	if generalError != "" {
		builder.WithError(generalError)
	}

	h.renderPage(w, "page-register", builder.Build())
}

// ForgotPasswordPage serves step one of the password reset flow.
// GET /forgot-password.
func (h *UIHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderForgotPasswordForm(w, r, forgotPasswordData{Step: 1})
}

type forgotPasswordData struct {
	Step     int // 1: request OTP, 2: submit OTP and new password
	Username string
	Error    string
	Flash    string
}

// ForgotPasswordSubmit handles both steps of the password reset flow,
// distinguished by the step form field. Step one requests an OTP for the
// username; step two submits the OTP with the new password.
// POST /forgot-password.
func (h *UIHandlers) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))

	if r.PostFormValue("step") != "2" {
		if username == "" {
			h.renderForgotPasswordForm(w, r, forgotPasswordData{Step: 1, Error: "Username is required."})
			return
		}
		if err := h.Account.RequestPasswordOTP(r.Context(), username); err != nil {
			h.renderForgotPasswordForm(w, r, forgotPasswordData{
				Step:     1,
				Username: username,
				Error:    apperrors.UserMessage(err),
			})
			return
		}
		h.renderForgotPasswordForm(w, r, forgotPasswordData{
			Step:     2,
			Username: username,
			Flash:    "An OTP has been sent to your registered mobile number.",
		})
		return
	}

	otp := strings.TrimSpace(r.PostFormValue("otp"))
	newPassword := r.PostFormValue("newPassword")
	if otp == "" || newPassword == "" {
		h.renderForgotPasswordForm(w, r, forgotPasswordData{
			Step:     2,
			Username: username,
			Error:    "OTP and new password are required.",
		})
		return
	}

	if err := h.Account.ResetPassword(r.Context(), username, otp, newPassword); err != nil {
		h.renderForgotPasswordForm(w, r, forgotPasswordData{
			Step:     2,
			Username: username,
			Error:    apperrors.UserMessage(err),
		})
		return
	}

	http.Redirect(w, r, "/?reset=1", http.StatusSeeOther)
}

func (h *UIHandlers) renderForgotPasswordForm(w http.ResponseWriter, r *http.Request, p forgotPasswordData) {
	builder := NewTemplateData(r, PageMeta{
		Title:       appTitle + " - Forgot Password",
		PageTitle:   "Forgot Password",
		CurrentPage: PageForgotPassword,
	}).
		With("Step", p.Step).
		With("Username", p.Username).
		WithFlash(p.Flash)
	if p.Error != "" {
		builder.WithError(p.Error)
	}

	h.renderPage(w, "page-forgot-password", builder.Build())
}
