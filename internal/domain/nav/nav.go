package nav

// Package nav is the role resolver: a static, immutable mapping from an
// application role to its post-login landing path and visible navigation
// links. All functions are total over the role domain, including "no role".

import (
	"fmt"

	domainauth "github.com/carebridge/hms-ui/internal/domain/auth"
)

// PublicEntryPath is where unauthenticated users land (the login page).
const PublicEntryPath = "/"

// Link is a single navigation entry.
type Link struct {
	Label string
	Path  string
}

var landingPaths = map[domainauth.Role]string{
	domainauth.RoleAdmin:   "/admin/dashboard",
	domainauth.RoleDoctor:  "/doctor/dashboard",
	domainauth.RolePatient: "/patient/dashboard",
}

var roleLinks = map[domainauth.Role][]Link{
	domainauth.RoleAdmin: {
		{Label: "Appointments", Path: "/appointments/list"},
		{Label: "Patient Records", Path: "/records/list"},
	},
	domainauth.RoleDoctor: {
		{Label: "Appointments", Path: "/appointments/list"},
		{Label: "Patient Records", Path: "/records/list"},
	},
	domainauth.RolePatient: {
		{Label: "My Appointments", Path: "/appointments/list"},
		{Label: "Book Appointment", Path: "/appointments/book"},
		{Label: "My Records", Path: "/records/list"},
	},
}

func init() {
	// The route guard redirects wrong-role navigation to the current role's
	// landing path, so every declared role must resolve a destination.
	for _, r := range domainauth.Roles() {
		if landingPaths[r] == "" {
			panic(fmt.Sprintf("nav: role %s has no landing path", r))
		}
		if _, ok := roleLinks[r]; !ok {
			panic(fmt.Sprintf("nav: role %s has no link set", r))
		}
	}
}

// LandingPath returns the canonical dashboard path for a role. Unknown or
// absent roles fall back to the public entry path.
func LandingPath(role domainauth.Role) string {
	if p, ok := landingPaths[role]; ok {
		return p
	}
	return PublicEntryPath
}

// LinksFor returns the ordered navigation links visible to a role. The
// result is a copy; callers may not mutate the static table through it.
// Unknown roles get an empty slice.
func LinksFor(role domainauth.Role) []Link {
	links, ok := roleLinks[role]
	if !ok {
		return []Link{}
	}
	out := make([]Link, len(links))
	copy(out, links)
	return out
}
