// Package dashboard maps a role to the dashboard variant and navigation
// the rendering boundary shows. It holds no state.
package dashboard

import "github.com/schoolportal/portal/internal/models"

// Variant names a dashboard layout.
type Variant string

const (
	VariantStudent Variant = "student"
	VariantParent  Variant = "parent"
	VariantTeacher Variant = "teacher"
	VariantAdmin   Variant = "admin"
	// VariantPlaceholder is the "under construction" dashboard.
	VariantPlaceholder Variant = "placeholder"
)

// NavItem is one sidebar link.
type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

var (
	navDashboard  = NavItem{Label: "Dashboard", Href: "/dashboard"}
	navAttendance = NavItem{Label: "Attendance", Href: "/attendance"}
	navHealth     = NavItem{Label: "Health", Href: "/health"}
	navActivities = NavItem{Label: "Activities", Href: "/activities"}
	navMessages   = NavItem{Label: "Messages", Href: "/messages"}
	navChildren   = NavItem{Label: "My Children", Href: "/children"}
	navStudents   = NavItem{Label: "Students", Href: "/students"}
	navUsers      = NavItem{Label: "Users", Href: "/users"}
	navReports    = NavItem{Label: "Reports", Href: "/reports"}
	navSettings   = NavItem{Label: "Settings", Href: "/settings"}
	navSchools    = NavItem{Label: "Schools", Href: "/schools"}
	navProfile    = NavItem{Label: "Profile", Href: "/profile"}
)

// VariantFor returns the dashboard variant for role.
func VariantFor(role models.Role) Variant {
	switch role {
	case models.RoleStudent:
		return VariantStudent
	case models.RoleParent:
		return VariantParent
	case models.RoleTeacher:
		return VariantTeacher
	case models.RoleAdmin:
		return VariantAdmin
	default:
		return VariantPlaceholder
	}
}

// NavigationFor returns the sidebar links for role, in display order.
func NavigationFor(role models.Role) []NavItem {
	switch role {
	case models.RoleStudent:
		return []NavItem{navDashboard, navAttendance, navHealth, navActivities, navMessages}
	case models.RoleParent:
		return []NavItem{navDashboard, navChildren, navHealth, navActivities, navMessages}
	case models.RoleTeacher:
		return []NavItem{navDashboard, navStudents, navAttendance, navHealth, navActivities, navMessages}
	case models.RoleAdmin:
		return []NavItem{navDashboard, navUsers, navReports, navSettings}
	case models.RoleOfficial:
		return []NavItem{navDashboard, navSchools, navReports, navMessages}
	default:
		return []NavItem{navDashboard, navProfile, navMessages}
	}
}

// CanMessage reports whether the role's navigation includes the message center.
func CanMessage(role models.Role) bool {
	for _, item := range NavigationFor(role) {
		if item == navMessages {
			return true
		}
	}
	return false
}

// PortalTitle returns the sidebar heading, e.g. "Teacher Portal".
func PortalTitle(role models.Role) string {
	return role.Title() + " Portal"
}
