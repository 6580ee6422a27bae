package httpx

import (
	"net/http"

	"github.com/carebridge/hms-ui/internal/domain/nav"
	"github.com/carebridge/hms-ui/internal/http/ui/viewmodel"
)

const errMsgFixBelow = "Please fix the errors below."

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
// The navigation bar follows the session's role: every role sees its own
// link set, and unauthenticated visitors see none.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		return layout
	}

	layout.IsAuthenticated = true
	layout.User = &viewmodel.User{
		Name:     session.Identity.DisplayName,
		Username: session.Identity.Username,
		Role:     string(session.Role),
	}
	layout.LandingPath = nav.LandingPath(session.Role)

	links := nav.LinksFor(session.Role)
	layout.Nav = make([]viewmodel.NavItem, 0, len(links))
	for _, link := range links {
		layout.Nav = append(layout.Nav, viewmodel.NavItem{
			Label:  link.Label,
			Path:   link.Path,
			Active: link.Path == r.URL.Path,
		})
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
		"LandingPath":     layout.LandingPath,
		// Templates index into Errors unconditionally; keep it present.
		"Errors": map[string]string{},
	}

	if layout.User != nil {
		data["User"] = layout.User
	}

	return data
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// WithFlash sets a one-off success message.
func (b *TemplateDataBuilder) WithFlash(msg string) *TemplateDataBuilder {
	if msg != "" {
		b.data["Flash"] = msg
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
