// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/middleware"
	"github.com/crmlocal/api/internal/platform/sec"
)

// fakeVerifier returns canned claims or a canned error.
type fakeVerifier struct {
	claims *sec.SessionClaims
	err    error
}

func (f *fakeVerifier) VerifyToken(tokenString string) (*sec.SessionClaims, error) {
	return f.claims, f.err
}

// fakeResolver maps usernames to identities.
type fakeResolver struct {
	users map[string]*sec.Identity
	err   error
}

func (f *fakeResolver) Resolve(ctx context.Context, username string) (*sec.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[username], nil
}

// echoIdentity is a terminal handler that reports whether an identity was injected.
func echoIdentity(t *testing.T, captured **sec.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = middleware.GetUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

func sessionClaims(username string, role sec.UserRole) *sec.SessionClaims {
	claims := &sec.SessionClaims{Role: string(role)}
	claims.Subject = username
	return claims
}

/*
TestAuthenticate_NoCookie verifies that requests without a session cookie
proceed anonymously.
*/
func TestAuthenticate_NoCookie(t *testing.T) {
	cookies := sec.NewSessionCookie("session_token", false)
	var captured *sec.Identity

	handler := middleware.Authenticate(cookies, &fakeVerifier{}, &fakeResolver{})(echoIdentity(t, &captured))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}

/*
TestAuthenticate_ValidToken verifies the full happy path: cookie extracted,
token verified, identity resolved and injected into context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	cookies := sec.NewSessionCookie("session_token", false)
	verifier := &fakeVerifier{claims: sessionClaims("alice", sec.RoleAdmin)}
	resolver := &fakeResolver{users: map[string]*sec.Identity{
		"alice": {UserID: "id-1", Username: "alice", Role: sec.RoleAdmin},
	}}

	var captured *sec.Identity
	handler := middleware.Authenticate(cookies, verifier, resolver)(echoIdentity(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: "session_token", Value: "some-token"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "alice", captured.Username)
	assert.Equal(t, sec.RoleAdmin, captured.Role)
}

/*
TestAuthenticate_InvalidToken verifies that a token failing verification is
treated like no token: the cookie is cleared and the request proceeds anonymous.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"expired", sec.ErrTokenExpired},
		{"bad_signature", sec.ErrTokenSignature},
		{"malformed", sec.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cookies := sec.NewSessionCookie("session_token", false)
			var captured *sec.Identity

			handler := middleware.Authenticate(cookies, &fakeVerifier{err: tt.err}, &fakeResolver{})(echoIdentity(t, &captured))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.AddCookie(&http.Cookie{Name: "session_token", Value: "stale-token"})

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			// Anonymous pass-through, not a hard failure.
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Nil(t, captured)

			// The stale cookie must be expired on the response.
			cleared := findCookie(t, recorder, "session_token")
			require.NotNil(t, cleared)
			assert.Empty(t, cleared.Value)
			assert.Negative(t, cleared.MaxAge)
		})
	}
}

/*
TestAuthenticate_UnknownUser verifies that a validly signed token whose subject
no longer maps to an active account is rejected like a bad token.
*/
func TestAuthenticate_UnknownUser(t *testing.T) {
	cookies := sec.NewSessionCookie("session_token", false)
	verifier := &fakeVerifier{claims: sessionClaims("ghost", sec.RoleStandard)}
	resolver := &fakeResolver{users: map[string]*sec.Identity{}}

	var captured *sec.Identity
	handler := middleware.Authenticate(cookies, verifier, resolver)(echoIdentity(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: "session_token", Value: "orphan-token"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
	require.NotNil(t, findCookie(t, recorder, "session_token"))
}

/*
TestRequireAuth verifies the 401 guard for anonymous vs authenticated requests.
*/
func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAuth(next)

	// 1. Anonymous request is rejected
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Authenticated request passes
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, authedRequest(t, sec.RoleStandard))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole verifies the role hierarchy enforcement.
*/
func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		request  *http.Request
		required sec.UserRole
		want     int
	}{
		{"anonymous", httptest.NewRequest(http.MethodGet, "/", nil), sec.RoleAdmin, http.StatusUnauthorized},
		{"standard_blocked_from_admin", authedRequest(t, sec.RoleStandard), sec.RoleAdmin, http.StatusForbidden},
		{"admin_allowed", authedRequest(t, sec.RoleAdmin), sec.RoleAdmin, http.StatusOK},
		{"admin_covers_standard", authedRequest(t, sec.RoleAdmin), sec.RoleStandard, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequireRole(tt.required)(next)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, tt.request)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestAuthenticate_EndToEnd exercises the middleware against a real
[sec.TokenService] rather than a fake.
*/
func TestAuthenticate_EndToEnd(t *testing.T) {
	cookies := sec.NewSessionCookie("session_token", false)
	resolver := &fakeResolver{users: map[string]*sec.Identity{
		"bob": {UserID: "id-2", Username: "bob", Role: sec.RoleStandard},
	}}

	service, err := sec.NewTokenService("end-to-end-secret", "crm-local", time.Minute)
	require.NoError(t, err)

	token, err := service.IssueSessionToken("bob", sec.RoleStandard)
	require.NoError(t, err)

	var captured *sec.Identity
	handler := middleware.Authenticate(cookies, service, resolver)(echoIdentity(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: "session_token", Value: token})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "bob", captured.Username)
}

// findCookie returns the named cookie from the recorded response, or nil.
func findCookie(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// authedRequest builds a request carrying an identity, as [middleware.Authenticate] would.
func authedRequest(t *testing.T, role sec.UserRole) *http.Request {
	t.Helper()

	cookies := sec.NewSessionCookie("session_token", false)
	verifier := &fakeVerifier{claims: sessionClaims("tester", role)}
	resolver := &fakeResolver{users: map[string]*sec.Identity{
		"tester": {UserID: "id-test", Username: "tester", Role: role},
	}}

	var result *http.Request
	capture := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		result = request
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: "session_token", Value: "token"})
	middleware.Authenticate(cookies, verifier, resolver)(capture).ServeHTTP(httptest.NewRecorder(), request)

	require.NotNil(t, result)
	return result
}
