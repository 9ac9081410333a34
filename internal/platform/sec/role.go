// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: every stored role is either admin or standard. Guard
// compositions ([middleware.RequireRole]) compare against these constants
// instead of ad-hoc string checks.
type UserRole string

const (
	// Unrestricted system access, including user management
	RoleAdmin UserRole = "admin"

	// Default role for regular CRM operators
	RoleStandard UserRole = "standard"
)

// IsValid reports whether the role is one of the closed set.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleStandard:
		return 10
	default:
		return 0
	}
}
