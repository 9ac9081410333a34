// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/crmlocal/api/internal/platform/apperr"
)

// PasswordPolicy holds the rules a new password must satisfy before hashing.
//
// # Uniform Enforcement
//
// Every path that accepts a new password (self-service change, admin-created
// accounts, admin resets) must go through [PasswordPolicy.Hash] so the rules
// cannot diverge between entry points.
type PasswordPolicy struct {
	// MinLength is the minimum number of bytes accepted.
	MinLength int
}

// Check validates a candidate password against the policy.
// It returns a POLICY_VIOLATION [apperr.AppError] on failure.
func (p PasswordPolicy) Check(password string) error {
	if len(password) < p.MinLength {
		return apperr.PolicyViolation(fmt.Sprintf("Password must be at least %d characters", p.MinLength))
	}
	return nil
}

// Hash validates the password against the policy and hashes it with bcrypt.
//
// Identical passwords produce different hash strings because bcrypt embeds a
// per-password random salt.
func (p PasswordPolicy) Hash(password string) (string, error) {
	if err := p.Check(password); err != nil {
		return "", err
	}
	return HashPassword(password)
}

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// It performs no policy checks; callers handling user input should prefer
// [PasswordPolicy.Hash]. The bootstrap admin seed uses it directly.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// It never returns an error for a mismatch, only false. bcrypt's comparison
// is constant-time, so the result does not leak through timing.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
