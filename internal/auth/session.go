package auth

import "github.com/schoolportal/portal/internal/models"

// Session identifies the authenticated user a request acts for. It is
// passed explicitly into every service call.
type Session struct {
	UserID string
	Role   models.Role
}

// Valid reports whether the session carries an identity.
func (s Session) Valid() bool {
	return s.UserID != ""
}
