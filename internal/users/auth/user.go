// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for authentication,
per-request identity resolution, and admin-driven account administration.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no external
dependencies and encapsulates all business rules related to user identity.
Sessions themselves carry no server-side state: a session is exactly one signed
JWT riding in the configured cookie until it expires.
*/
package auth

import (
	"time"

	"github.com/crmlocal/api/internal/platform/sec"
)

// # Domain Entities

// User represents an operator account of the CRM.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	LastActiveAt *time.Time   `json:"last_active_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// UserPresence decorates a User with the volatile online flag derived from
// the Redis presence key. The flag is advisory; it never gates authorization.
type UserPresence struct {
	*User
	Online bool `json:"online"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldIsActive        = "is_active"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldUser            = "user"
	FieldMessage         = "message"
)
