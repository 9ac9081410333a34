// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

/*
Package auth implements the core identity and access management (IAM) system.

It handles credential verification, session token issuance, per-request identity
resolution for the middleware guard, and admin-driven account management.

Architecture:

  - Service: Orchestrates business logic (Login, ChangePassword, user admin).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Presence).
  - Security: Leverages Bcrypt hashing and HS256-signed JWTs from platform/sec.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/internal/platform/ctxutil"
	"github.com/crmlocal/api/internal/platform/sec"
	"github.com/crmlocal/api/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// IssueSessionToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - username: The login name of the account ('sub' claim).
	//   - role: The role of the account at issuance time.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	IssueSessionToken(username string, role sec.UserRole) (string, error)
}

// Service implements user authentication and account administration use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login, or
// password-change logic must be reviewed before merging.
type Service struct {
	userRepository     UserRepository
	presenceRepository PresenceRepository
	tokenProvider      TokenProvider
	passwordPolicy     sec.PasswordPolicy
	tokenTTL           time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	presenceRepo PresenceRepository,
	tokenProv TokenProvider,
	policy sec.PasswordPolicy,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		userRepository:     userRepo,
		presenceRepository: presenceRepo,
		tokenProvider:      tokenProv,
		passwordPolicy:     policy,
		tokenTTL:           tokenTTL,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

/*
Login validates user credentials and issues a session token.

Description: Verifies identity, performs constant-time password comparison via
bcrypt, and issues a signed session JWT. Deactivated accounts fail exactly like
unknown usernames to prevent enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session token and user profile
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Look up by username. Generic message to prevent enumeration.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Deactivated accounts cannot authenticate
	if !user.IsActive {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Issue the session token
	token, err := service.tokenProvider.IssueSessionToken(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Best-effort activity tracking; never converts into a login failure
	service.touchActivity(context, user)

	return &LoginSession{
		Token:     token,
		ExpiresAt: time.Now().Add(service.tokenTTL),
		User:      user,
	}, nil
}

/*
Resolve maps a verified token subject onto a live identity.

Description: Implements the middleware IdentityResolver contract. A valid
signature is not enough; the account must still exist and be active. Resolution
refreshes the user's presence and last-active markers as a side effect.

Parameters:
  - context: context.Context
  - username: string (the token 'sub' claim)

Returns:
  - *sec.Identity: The live identity, or nil when the account is gone or inactive
  - err: Storage failures only
*/
func (service *Service) Resolve(context context.Context, username string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		// A vanished account is an anonymous request, not a server error
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_resolve_failed: %w", err)
	}

	if !user.IsActive {
		return nil, nil
	}

	// Best-effort activity tracking; never converts into a request failure
	service.touchActivity(context, user)

	return &sec.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// touchActivity refreshes the Redis presence key and the persistent
// last-active timestamp. Failures are logged and swallowed: activity tracking
// is advisory and must never fail the request that triggered it.
func (service *Service) touchActivity(context context.Context, user *User) {
	if err := service.presenceRepository.MarkActive(context, user.Username); err != nil {
		ctxutil.GetLogger(context).Warn("auth_presence_mark_failed",
			"username", user.Username,
			"error", err,
		)
	}
	if err := service.userRepository.TouchLastActive(context, user.ID, time.Now()); err != nil {
		ctxutil.GetLogger(context).Warn("auth_last_active_touch_failed",
			"username", user.Username,
			"error", err,
		)
	}
}

// # Password Management

/*
ChangePassword allows an authenticated user to update their own credentials.

Description: Verifies the current password before applying the new one. The new
password goes through the uniform policy check. Outstanding session tokens stay
valid until their natural expiry.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized, policy, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Policy check + hash in one step so the rules cannot be bypassed
	hashedPassword, err := service.passwordPolicy.Hash(newPassword)
	if err != nil {
		return err
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

/*
ResetPassword replaces another user's password without knowing the old one.

Description: Admin-only recovery path. Skips the current-password check but
still enforces the uniform password policy.

Parameters:
  - context: context.Context
  - username: string
  - newPassword: string

Returns:
  - err: NotFound, policy, or storage failures
*/
func (service *Service) ResetPassword(context context.Context, username, newPassword string) error {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	hashedPassword, err := service.passwordPolicy.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	return nil
}

// # Account Administration

// CreateUserInput holds the data required to enroll a new account.
type CreateUserInput struct {
	Username string
	Password string
	Role     sec.UserRole
}

/*
CreateUser validates, hashes, and persists a brand new account.

Description: Admin-only enrollment. The password goes through the same policy
as every other password entry point.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *User: Created entity
  - err: Conflict (if the username exists), policy, or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*User, error) {

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Closed role set
	if !input.Role.IsValid() {
		return nil, apperr.ValidationError("Unknown role", apperr.FieldError{Field: FieldRole, Message: "must be admin or standard"})
	}

	// Uniform policy + hash
	hashedPassword, err := service.passwordPolicy.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         input.Role,
		IsActive:     true,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_create_user_failed: %w", err)
	}

	return user, nil
}

/*
ListUsers returns every account decorated with the volatile online flag.

Parameters:
  - context: context.Context

Returns:
  - []UserPresence: All accounts ordered by username
  - err: Storage failures
*/
func (service *Service) ListUsers(context context.Context) ([]UserPresence, error) {
	users, err := service.userRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("auth_service_list_users_failed: %w", err)
	}

	result := make([]UserPresence, 0, len(users))
	for _, user := range users {
		online, err := service.presenceRepository.IsOnline(context, user.Username)
		if err != nil {
			// Presence is advisory; degrade to offline rather than failing the list
			ctxutil.GetLogger(context).Warn("auth_presence_lookup_failed",
				"username", user.Username,
				"error", err,
			)
			online = false
		}
		result = append(result, UserPresence{User: user, Online: online})
	}

	return result, nil
}

/*
GetUser returns a single account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated entity
  - err: NotFound or storage failures
*/
func (service *Service) GetUser(context context.Context, username string) (*User, error) {
	return service.userRepository.FindByUsername(context, username)
}

// UpdateUserInput holds the partially-updatable administration fields.
// Nil pointers leave the corresponding field untouched.
type UpdateUserInput struct {
	Role     *sec.UserRole
	IsActive *bool
}

/*
UpdateUser applies role and active-flag changes to an account.

Description: Admin-only. An admin cannot demote or deactivate their own
account; that would allow locking every admin out of the system.

Parameters:
  - context: context.Context
  - actorUsername: string (the admin performing the change)
  - username: string (the target account)
  - input: UpdateUserInput

Returns:
  - *User: The updated entity
  - err: NotFound, validation, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, actorUsername, username string, input UpdateUserInput) (*User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	selfTarget := actorUsername == user.Username

	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperr.ValidationError("Unknown role", apperr.FieldError{Field: FieldRole, Message: "must be admin or standard"})
		}
		if selfTarget && *input.Role != sec.RoleAdmin {
			return nil, apperr.Forbidden("Cannot demote your own account")
		}
		if err := service.userRepository.SetRole(context, user.ID, *input.Role); err != nil {
			return nil, fmt.Errorf("auth_service_set_role_failed: %w", err)
		}
		user.Role = *input.Role
	}

	if input.IsActive != nil {
		if selfTarget && !*input.IsActive {
			return nil, apperr.Forbidden("Cannot deactivate your own account")
		}
		if err := service.userRepository.SetActive(context, user.ID, *input.IsActive); err != nil {
			return nil, fmt.Errorf("auth_service_set_active_failed: %w", err)
		}
		user.IsActive = *input.IsActive
	}

	return user, nil
}

// # Bootstrap

/*
EnsureAdmin provisions the configured administrator account if it is absent.

Description: Runs once at startup. The configured default credentials are
hashed directly, without the policy length check: the policy governs API
operations, and applying it here would keep the documented default from booting.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - err: Storage failures
*/
func (service *Service) EnsureAdmin(context context.Context, username, password string) error {

	// Already provisioned
	if _, err := service.userRepository.FindByUsername(context, username); err == nil {
		return nil
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_service_seed_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         sec.RoleAdmin,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return fmt.Errorf("auth_service_seed_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("auth_admin_seeded", "username", username)
	return nil
}
