package user

import "strings"

// Role is the coarse RBAC role carried by every account and in the access token.
type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

var AllRoles = []Role{RoleEmployee, RoleManager, RoleAdmin, RoleSuperAdmin}

// Admins can manage the catalog, users and departments.
var Admins = []Role{RoleAdmin, RoleSuperAdmin}

// Supervisors can record attendance and read reportee reports.
var Supervisors = []Role{RoleManager, RoleAdmin, RoleSuperAdmin}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) IsManager() bool {
	return r == RoleManager
}

// In reports whether r is one of the given roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
