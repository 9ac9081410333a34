// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/sec"
)

func newTokenService(t *testing.T, secret string, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(secret, "crm-local", ttl)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that an issued token verifies and carries
the subject and role it was issued with.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "unit-test-secret", time.Hour)

	token, err := service.IssueSessionToken("alice", sec.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
	assert.Equal(t, "crm-local", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestTokenService_Expired verifies that a token past its TTL fails with
[sec.ErrTokenExpired] and not some other classification.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t, "unit-test-secret", time.Millisecond)

	token, err := service.IssueSessionToken("alice", sec.RoleStandard)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_SecretRotation verifies that a token signed under a previous
secret key fails with [sec.ErrTokenSignature].
*/
func TestTokenService_SecretRotation(t *testing.T) {
	oldService := newTokenService(t, "old-secret", time.Hour)
	newService := newTokenService(t, "new-secret", time.Hour)

	token, err := oldService.IssueSessionToken("alice", sec.RoleStandard)
	require.NoError(t, err)

	_, err = newService.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)
}

/*
TestTokenService_Malformed verifies that garbage input fails with
[sec.ErrTokenMalformed].
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTokenService(t, "unit-test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not_a_jwt", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
		})
	}
}

/*
TestNewTokenService_Validation verifies constructor guard rails.
*/
func TestNewTokenService_Validation(t *testing.T) {
	// 1. Empty secret is refused
	_, err := sec.NewTokenService("", "crm-local", time.Hour)
	assert.Error(t, err)

	// 2. Non-positive TTL is refused
	_, err = sec.NewTokenService("secret", "crm-local", 0)
	assert.Error(t, err)
}
