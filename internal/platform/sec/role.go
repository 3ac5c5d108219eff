// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full write access to the catalog and the user directory
	RoleAdmin UserRole = "admin"

	// May edit or delete any review or comment
	RoleModerator UserRole = "moderator"

	// Default role for registered users
	RoleUser UserRole = "user"
)

// Roles lists every assignable role, lowest first.
var Roles = []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}

// ParseRole reports whether s names a known role.
func ParseRole(s string) (UserRole, bool) {
	role := UserRole(s)
	return role, role.level() > 0
}

// EffectiveRole folds the superuser flag into the role hierarchy.
func EffectiveRole(role UserRole, superuser bool) UserRole {
	if superuser {
		return RoleAdmin
	}
	return role
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsAdmin reports whether r carries admin privileges.
func (r UserRole) IsAdmin() bool { return r == RoleAdmin }

// IsModerator reports whether r carries moderator privileges or higher.
func (r UserRole) IsModerator() bool { return r.AtLeast(RoleModerator) }

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
