// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

// Package middleware provides the HTTP middleware chain for the CRM Local API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/internal/platform/ctxkey"
	"github.com/crmlocal/api/internal/platform/ctxutil"
	"github.com/crmlocal/api/internal/platform/respond"
	"github.com/crmlocal/api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.SessionClaims, error)
}

// IdentityResolver resolves a verified token subject into a live user identity.
//
// A valid signature alone is not proof of access: the account behind the token
// may have been deleted or deactivated since issuance. The resolver confirms the
// user still exists and is active, and returns nil (no error) when it doesn't.
type IdentityResolver interface {
	Resolve(ctx context.Context, username string) (*sec.Identity, error)
}

// Authenticate extracts and verifies the session token from the request cookie.
//
// # Flow
//  1. Read the session cookie. If absent, the request proceeds as anonymous.
//  2. Verify the JWT via [TokenVerifier].
//  3. Resolve the token subject against the credential store via [IdentityResolver].
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// A token that fails verification, or whose subject no longer maps to an active
// account, is treated exactly like no token at all: the stale cookie is cleared
// and the request proceeds anonymous. Route-level guards ([RequireAuth],
// [RequireRole]) decide whether anonymous access is acceptable.
func Authenticate(cookies sec.SessionCookie, verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			tokenString, ok := cookies.Extract(request)
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				cookies.Clear(writer)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			user, err := resolver.Resolve(request.Context(), claims.Subject)
			if err != nil {
				ctxutil.GetLogger(request.Context()).Error("auth_resolve_failed",
					"username", claims.Subject,
					"error", err,
				)
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			if user == nil {
				cookies.Clear(writer)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := GetUser(request.Context())
		if user == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.Identity] exists in context (implies AuthN).
//  2. Check if the user's role meets or exceeds the target role using [sec.UserRole.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user := GetUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if user == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !user.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser retrieves the [*sec.Identity] from the [context.Context].
//
// # Returns
//   - A pointer to [sec.Identity] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.Identity {
	user, ok := ctx.Value(ctxkey.KeyUser).(*sec.Identity)
	if !ok {
		return nil
	}
	return user
}
