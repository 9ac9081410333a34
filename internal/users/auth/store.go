// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package auth

import (
	"context"
	"time"

	"github.com/crmlocal/api/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		List returns every account ordered by username.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*User, error)

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SetRole replaces the user's role.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: sec.UserRole

		Returns:
		  - error: Persistence failures
	*/
	SetRole(context context.Context, userID string, role sec.UserRole) error

	/*
		SetActive flips the account's active flag (soft lifecycle; rows are
		never removed by normal operation).

		Parameters:
		  - context: context.Context
		  - userID: string
		  - active: bool

		Returns:
		  - error: Persistence failures
	*/
	SetActive(context context.Context, userID string, active bool) error

	/*
		TouchLastActive records an activity timestamp on the account row.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - at: time.Time

		Returns:
		  - error: Persistence failures
	*/
	TouchLastActive(context context.Context, userID string, at time.Time) error
}

// # Volatile Data Access

// PresenceRepository defines the contract for the Redis-backed presence flag.
//
// Presence is a TTL key refreshed on every authenticated request. When the key
// has expired the user is considered offline. Lost writes are acceptable;
// consumers must treat the flag as advisory.
type PresenceRepository interface {

	/*
		MarkActive refreshes the presence key for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Persistence failures
	*/
	MarkActive(context context.Context, username string) error

	/*
		IsOnline reports whether the presence key for a username is alive.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - bool: true while the TTL key exists
		  - error: Retrieval failures
	*/
	IsOnline(context context.Context, username string) (bool, error)
}
