// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/internal/platform/sec"
)

/*
TestPasswordPolicy_Check verifies the minimum length rule and its error code.
*/
func TestPasswordPolicy_Check(t *testing.T) {
	policy := sec.PasswordPolicy{MinLength: 8}

	tests := []struct {
		name     string
		password string
		hasError bool
	}{
		{"long_enough", "correct-horse", false},
		{"exactly_min", "12345678", false},
		{"one_short", "1234567", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Check(tt.password)

			if tt.hasError {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "POLICY_VIOLATION", ae.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestPasswordPolicy_Hash verifies that hashing enforces the policy and that
the produced hash verifies against the original password.
*/
func TestPasswordPolicy_Hash(t *testing.T) {
	policy := sec.PasswordPolicy{MinLength: 8}

	// 1. Too-short passwords never reach bcrypt
	_, err := policy.Hash("short")
	require.Error(t, err)

	// 2. Valid passwords hash and verify
	hash, err := policy.Hash("a-sufficiently-long-password")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("a-sufficiently-long-password", hash))
	assert.False(t, sec.CheckPasswordHash("a-different-password", hash))
}

/*
TestHashPassword_Salted verifies that identical passwords produce distinct
hash strings (bcrypt embeds a random salt).
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same-password", first))
	assert.True(t, sec.CheckPasswordHash("same-password", second))
}
