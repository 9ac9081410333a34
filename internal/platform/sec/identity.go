// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package sec

// Identity is the resolved caller of an authenticated request.
//
// # Resolution
//
// Unlike raw [SessionClaims], an Identity is only produced after the
// credential store confirmed that the account still exists and is active,
// so the Role here is the stored one, not the (possibly stale) token claim.
// It is injected into the request context by the authentication middleware.
type Identity struct {
	// UserID is the account's primary key.
	UserID string

	// Username is the unique login name (token subject).
	Username string

	// Role is the account's current authorization level.
	Role UserRole
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
