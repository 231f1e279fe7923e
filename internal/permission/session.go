package permission

import "slices"

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Session is the capability object handed to views. The zero value is an
// anonymous visitor.
type Session struct {
	UserID string
	Roles  []string
	// Token is the raw credential, forwarded to the API on mutating calls.
	Token string
}

// Anonymous returns a session with no identity and no roles.
func Anonymous() Session {
	return Session{}
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// IsAdmin reports whether the session may perform destructive actions.
func (s Session) IsAdmin() bool {
	return s.Authenticated() && slices.Contains(s.Roles, RoleAdmin)
}

// HasAnyRole reports whether the session holds at least one of roles.
func (s Session) HasAnyRole(roles ...string) bool {
	if !s.Authenticated() {
		return false
	}
	for _, role := range roles {
		if slices.Contains(s.Roles, role) {
			return true
		}
	}
	return false
}
