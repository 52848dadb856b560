package models

import "strings"

// Role is the portal audience a user belongs to.
type Role string

const (
	RoleStudent   Role = "student"
	RoleParent    Role = "parent"
	RoleTeacher   Role = "teacher"
	RoleAdmin     Role = "admin"
	RoleOfficial  Role = "official"
	RoleCommunity Role = "community"
	RoleNGO       Role = "ngo"
	RoleMedia     Role = "media"
	RolePTA       Role = "pta"
)

// Roles lists every known role in display order.
var Roles = []Role{
	RoleStudent,
	RoleParent,
	RoleTeacher,
	RoleAdmin,
	RoleOfficial,
	RoleCommunity,
	RoleNGO,
	RoleMedia,
	RolePTA,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Title returns the role with its first letter upper-cased ("teacher" -> "Teacher").
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}

// User is a portal account.
type User struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Role   Role   `json:"role" yaml:"role"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}
