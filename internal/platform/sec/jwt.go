// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, the
// session cookie codec) from the domain logic. It acts as an Infrastructure
// service injected into the Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Errors

// Token verification failures are classified into three sentinel errors so
// callers can distinguish them in logs and tests. At the HTTP boundary all
// three collapse into the same 401 response with the cookie cleared.
var (
	// ErrTokenExpired means the signature was valid but 'exp' has passed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenSignature means the token was not signed with the current secret
	// key (tampering, or a key rotation since issuance).
	ErrTokenSignature = errors.New("sec: token signature invalid")

	// ErrTokenMalformed means the string is not a structurally valid JWT.
	ErrTokenMalformed = errors.New("sec: token malformed")
)

// SessionClaims represents the payload embedded inside a session JWT.
//
// The subject carries the username; the role travels with the token so the
// request log can tag entries even before the credential store is consulted.
// Authorization decisions always use the role freshly loaded from the store.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Role is abbreviated to keep the JWT payload small.
	Role string `json:"rol"`
}

// TokenService handles generation and verification of session JWTs using
// HS256 with a single process-wide secret key.
//
// # Lifecycle
//
// Tokens are pure issuance-and-expiry: there is no server-side blacklist, so
// a token stays valid until 'exp' or until the secret key rotates.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: The HMAC signing key (CRM_SECRET_KEY).
//   - issuer: The 'iss' claim stamped on every token.
//   - ttl: Token lifetime (CRM_TOKEN_EXPIRE_MINUTES).
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: secret key must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// IssueSessionToken creates a new signed session token for a user.
//
// Expiry is now + the configured TTL. The function has no side effects;
// the result depends only on the input, the clock, and the configuration.
func (service *TokenService) IssueSessionToken(username string, role UserRole) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a session token string.
//
// # Returns
//   - The embedded [*SessionClaims] on success.
//   - [ErrTokenExpired], [ErrTokenSignature], or [ErrTokenMalformed] on failure.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classifyTokenError maps golang-jwt parse errors onto the package sentinels.
//
// Expiry is checked before signature problems: jwt/v5 joins multiple causes
// into one error, and an expired-but-authentic token must surface as expired.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}
