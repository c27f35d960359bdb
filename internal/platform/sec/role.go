// Copyright (c) 2026 MangroveNet. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Network-wide access: reviews submissions, manages accounts, deletes comments
	RoleSuperAdmin UserRole = "SUPER_ADMIN"

	// Country-scoped access: authors and edits content for their own country
	RoleAdmin UserRole = "ADMIN"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale leaves room for intermediate roles
	switch r {
	case RoleSuperAdmin:
		return 20
	case RoleAdmin:
		return 10
	default:
		return 0
	}
}
