package viewmodel

// User represents the authenticated user context exposed to templates.
type User struct {
	Name     string
	Username string
	Role     string
}

// NavItem is one entry in the top navigation bar.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
	LandingPath     string
}
