// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package sec

import (
	"net/http"
	"time"
)

// SessionCookie is the transport codec for the session token.
//
// # Single Source of Truth
//
// The cookie name and Secure flag are captured exactly once, from the loaded
// configuration, when the value is constructed in main. Attach, Extract, and
// Clear all read the name through the same field, so the write and read paths
// cannot diverge (a historical defect in this system came from two call sites
// each spelling the cookie name independently).
type SessionCookie struct {
	name   string
	secure bool
}

// NewSessionCookie constructs the codec from the configured cookie name and
// Secure flag (CRM_SESSION_COOKIE_NAME / CRM_SESSION_COOKIE_SECURE).
func NewSessionCookie(name string, secure bool) SessionCookie {
	return SessionCookie{name: name, secure: secure}
}

// Name returns the configured cookie name. Exposed for logging and tests.
func (c SessionCookie) Name() string {
	return c.name
}

// Attach sets the session cookie on the response.
//
// The cookie is always HttpOnly; the Secure attribute follows configuration
// so local HTTP deployments keep working.
func (c SessionCookie) Attach(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Extract reads the session token from the request.
//
// # Returns
//   - The raw token string and true when the cookie is present and non-empty.
//   - "" and false otherwise. Absence is not an error: anonymous requests are
//     legal until a guard demands authentication.
func (c SessionCookie) Extract(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear expires the session cookie immediately.
//
// Used on logout and whenever a request arrives with an invalid or expired
// token, so stale cookies do not keep bouncing off the guard.
func (c SessionCookie) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
