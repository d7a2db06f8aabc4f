package models

// Role is the single effective role derived from a user's flags
type Role string

const (
	RoleSuperuser   Role = "superuser"
	RoleSchoolAdmin Role = "school_admin"
	RoleTeacher     Role = "teacher"
	RoleStudent     Role = "student"
	RoleGuardian    Role = "guardian"
	RoleUser        Role = "user"
)

// RoleFlags mirrors the boolean role columns of the users table
type RoleFlags struct {
	IsSuperuser bool
	IsAdmin     bool
	IsTeacher   bool
	IsStudent   bool
	IsGuardian  bool
}

// ClassifyRole picks the highest-priority role set in flags:
// superuser > school admin > teacher > student > guardian > user.
func ClassifyRole(flags RoleFlags) Role {
	switch {
	case flags.IsSuperuser:
		return RoleSuperuser
	case flags.IsAdmin:
		return RoleSchoolAdmin
	case flags.IsTeacher:
		return RoleTeacher
	case flags.IsStudent:
		return RoleStudent
	case flags.IsGuardian:
		return RoleGuardian
	default:
		return RoleUser
	}
}

var dashboardPaths = map[Role]string{
	RoleSuperuser:   "/superadmin/dashboard",
	RoleSchoolAdmin: "/admin/dashboard",
	RoleTeacher:     "/teacher/dashboard",
	RoleStudent:     "/student/dashboard",
	RoleGuardian:    "/guardian/dashboard",
	RoleUser:        "/dashboard",
}

// DashboardPath returns the landing route for a role
func DashboardPath(role Role) string {
	if p, ok := dashboardPaths[role]; ok {
		return p
	}
	return dashboardPaths[RoleUser]
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	_, ok := dashboardPaths[r]
	return ok
}

// IsSchoolStaff reports whether the role manages a school
func (r Role) IsSchoolStaff() bool {
	return r == RoleSchoolAdmin || r == RoleSuperuser
}
