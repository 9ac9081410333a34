// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/internal/platform/sec"
)

// # Test Fakes

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	users map[string]*User // keyed by username
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*User{}}
}

func (repository *memoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	for _, user := range repository.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	if user, ok := repository.users[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUserRepository) Create(_ context.Context, user *User) error {
	repository.users[user.Username] = user
	return nil
}

func (repository *memoryUserRepository) List(_ context.Context) ([]*User, error) {
	users := make([]*User, 0, len(repository.users))
	for _, user := range repository.users {
		users = append(users, user)
	}
	return users, nil
}

func (repository *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	for _, user := range repository.users {
		if user.ID == userID {
			user.PasswordHash = newHash
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (repository *memoryUserRepository) SetRole(_ context.Context, userID string, role sec.UserRole) error {
	for _, user := range repository.users {
		if user.ID == userID {
			user.Role = role
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (repository *memoryUserRepository) SetActive(_ context.Context, userID string, active bool) error {
	for _, user := range repository.users {
		if user.ID == userID {
			user.IsActive = active
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (repository *memoryUserRepository) TouchLastActive(_ context.Context, userID string, at time.Time) error {
	for _, user := range repository.users {
		if user.ID == userID {
			user.LastActiveAt = &at
			return nil
		}
	}
	return apperr.NotFound("User")
}

// memoryPresenceRepository records MarkActive calls.
type memoryPresenceRepository struct {
	marked map[string]bool
}

func newMemoryPresenceRepository() *memoryPresenceRepository {
	return &memoryPresenceRepository{marked: map[string]bool{}}
}

func (repository *memoryPresenceRepository) MarkActive(_ context.Context, username string) error {
	repository.marked[username] = true
	return nil
}

func (repository *memoryPresenceRepository) IsOnline(_ context.Context, username string) (bool, error) {
	return repository.marked[username], nil
}

// # Harness

type serviceHarness struct {
	service  *Service
	users    *memoryUserRepository
	presence *memoryPresenceRepository
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()

	tokens, err := sec.NewTokenService("service-test-secret", "crm-local", time.Hour)
	require.NoError(t, err)

	users := newMemoryUserRepository()
	presence := newMemoryPresenceRepository()

	return &serviceHarness{
		service:  NewService(users, presence, tokens, sec.PasswordPolicy{MinLength: 8}, time.Hour),
		users:    users,
		presence: presence,
	}
}

// seedUser inserts an account directly, bypassing the service.
func (harness *serviceHarness) seedUser(t *testing.T, username, password string, role sec.UserRole, active bool) *User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &User{
		ID:           "id-" + username,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	harness.users.users[username] = user
	return user
}

// # Authentication

/*
TestService_Login covers the credential verification matrix.
*/
func TestService_Login(t *testing.T) {
	harness := newServiceHarness(t)
	harness.seedUser(t, "alice", "correct-password", sec.RoleStandard, true)
	harness.seedUser(t, "carol", "correct-password", sec.RoleStandard, false)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid_credentials", "alice", "correct-password", false},
		{"wrong_password", "alice", "wrong-password", true},
		{"unknown_user", "nobody", "correct-password", true},
		{"deactivated_account", "carol", "correct-password", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := harness.service.Login(context.Background(), LoginInput{
				Username: tt.username,
				Password: tt.password,
			})

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				// Uniform message across all failure modes to prevent enumeration
				assert.Equal(t, "UNAUTHORIZED", ae.Code)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
			assert.Equal(t, "alice", session.User.Username)
			assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
		})
	}
}

/*
TestService_Login_TracksActivity verifies the best-effort presence side effect.
*/
func TestService_Login_TracksActivity(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.seedUser(t, "alice", "correct-password", sec.RoleStandard, true)

	_, err := harness.service.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "correct-password",
	})
	require.NoError(t, err)

	assert.True(t, harness.presence.marked["alice"])
	assert.NotNil(t, user.LastActiveAt)
}

/*
TestService_Resolve verifies identity resolution for the middleware guard.
*/
func TestService_Resolve(t *testing.T) {
	harness := newServiceHarness(t)
	harness.seedUser(t, "alice", "pw-does-not-matter", sec.RoleAdmin, true)
	harness.seedUser(t, "carol", "pw-does-not-matter", sec.RoleStandard, false)

	// 1. Active account resolves to an identity
	identity, err := harness.service.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, sec.RoleAdmin, identity.Role)
	assert.True(t, harness.presence.marked["alice"])

	// 2. Deactivated account resolves to anonymous, not an error
	identity, err = harness.service.Resolve(context.Background(), "carol")
	require.NoError(t, err)
	assert.Nil(t, identity)

	// 3. Vanished account resolves to anonymous, not an error
	identity, err = harness.service.Resolve(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

// # Password Management

/*
TestService_ChangePassword verifies the self-service password rotation rules.
*/
func TestService_ChangePassword(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.seedUser(t, "alice", "old-password", sec.RoleStandard, true)

	// 1. Wrong current password is rejected
	err := harness.service.ChangePassword(context.Background(), user.ID, "not-the-password", "new-long-password")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// 2. Policy applies to the new password
	err = harness.service.ChangePassword(context.Background(), user.ID, "old-password", "short")
	require.Error(t, err)
	assert.Equal(t, "POLICY_VIOLATION", apperr.As(err).Code)

	// 3. Valid change replaces the hash
	err = harness.service.ChangePassword(context.Background(), user.ID, "old-password", "new-long-password")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("new-long-password", user.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("old-password", user.PasswordHash))
}

/*
TestService_ResetPassword verifies the admin recovery path skips the
current-password check but keeps the policy.
*/
func TestService_ResetPassword(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.seedUser(t, "alice", "forgotten-password", sec.RoleStandard, true)

	// 1. Policy still applies
	err := harness.service.ResetPassword(context.Background(), "alice", "short")
	require.Error(t, err)
	assert.Equal(t, "POLICY_VIOLATION", apperr.As(err).Code)

	// 2. No current password needed
	err = harness.service.ResetPassword(context.Background(), "alice", "recovered-password")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("recovered-password", user.PasswordHash))

	// 3. Unknown username
	err = harness.service.ResetPassword(context.Background(), "ghost", "recovered-password")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Account Administration

/*
TestService_CreateUser covers enrollment validation.
*/
func TestService_CreateUser(t *testing.T) {
	harness := newServiceHarness(t)
	harness.seedUser(t, "taken", "whatever-password", sec.RoleStandard, true)

	tests := []struct {
		name     string
		input    CreateUserInput
		wantCode string
	}{
		{"valid", CreateUserInput{Username: "newbie", Password: "long-enough-pw", Role: sec.RoleStandard}, ""},
		{"duplicate_username", CreateUserInput{Username: "taken", Password: "long-enough-pw", Role: sec.RoleStandard}, "CONFLICT"},
		{"short_password", CreateUserInput{Username: "shorty", Password: "short", Role: sec.RoleStandard}, "POLICY_VIOLATION"},
		{"unknown_role", CreateUserInput{Username: "roley", Password: "long-enough-pw", Role: "superuser"}, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := harness.service.CreateUser(context.Background(), tt.input)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.True(t, user.IsActive)
			assert.True(t, sec.CheckPasswordHash("long-enough-pw", user.PasswordHash))
		})
	}
}

/*
TestService_UpdateUser verifies partial updates and the self-lockout guards.
*/
func TestService_UpdateUser(t *testing.T) {
	harness := newServiceHarness(t)
	harness.seedUser(t, "boss", "whatever-password", sec.RoleAdmin, true)
	harness.seedUser(t, "worker", "whatever-password", sec.RoleStandard, true)

	demote := sec.RoleStandard
	promote := sec.RoleAdmin
	inactive := false

	// 1. Promoting another user works
	user, err := harness.service.UpdateUser(context.Background(), "boss", "worker", UpdateUserInput{Role: &promote})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, user.Role)

	// 2. Self-demotion is forbidden
	_, err = harness.service.UpdateUser(context.Background(), "boss", "boss", UpdateUserInput{Role: &demote})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 3. Self-deactivation is forbidden
	_, err = harness.service.UpdateUser(context.Background(), "boss", "boss", UpdateUserInput{IsActive: &inactive})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 4. Deactivating another user works
	user, err = harness.service.UpdateUser(context.Background(), "boss", "worker", UpdateUserInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

/*
TestService_ListUsers verifies the presence decoration.
*/
func TestService_ListUsers(t *testing.T) {
	harness := newServiceHarness(t)
	harness.seedUser(t, "alice", "whatever-password", sec.RoleAdmin, true)
	harness.seedUser(t, "bob", "whatever-password", sec.RoleStandard, true)
	harness.presence.marked["alice"] = true

	users, err := harness.service.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	online := map[string]bool{}
	for _, user := range users {
		online[user.Username] = user.Online
	}
	assert.True(t, online["alice"])
	assert.False(t, online["bob"])
}

// # Bootstrap

/*
TestService_EnsureAdmin verifies the startup seed, including the documented
bypass of the length policy for the default admin/admin credentials.
*/
func TestService_EnsureAdmin(t *testing.T) {
	harness := newServiceHarness(t)

	// 1. Seeds with a password shorter than the policy minimum
	err := harness.service.EnsureAdmin(context.Background(), "admin", "admin")
	require.NoError(t, err)

	seeded, err := harness.users.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, seeded.Role)
	assert.True(t, seeded.IsActive)
	assert.True(t, sec.CheckPasswordHash("admin", seeded.PasswordHash))

	// 2. Idempotent: a second run never overwrites a changed password
	seeded.PasswordHash = "sentinel"
	require.NoError(t, harness.service.EnsureAdmin(context.Background(), "admin", "admin"))
	assert.Equal(t, "sentinel", seeded.PasswordHash)

	// 3. The seeded admin can log in end to end
	harness2 := newServiceHarness(t)
	require.NoError(t, harness2.service.EnsureAdmin(context.Background(), "admin", "admin"))
	session, err := harness2.service.Login(context.Background(), LoginInput{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, session.User.Role)
}
