// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package sec_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/sec"
)

/*
TestSessionCookie_RoundTrip verifies that a token attached to a response can
be extracted from a request carrying the same cookie.
*/
func TestSessionCookie_RoundTrip(t *testing.T) {
	cookies := sec.NewSessionCookie("session_token", false)

	// 1. Attach to a response
	recorder := httptest.NewRecorder()
	cookies.Attach(recorder, "token-value", time.Now().Add(time.Hour))

	written := recorder.Result().Cookies()
	require.Len(t, written, 1)
	assert.Equal(t, "session_token", written[0].Name)
	assert.True(t, written[0].HttpOnly)
	assert.Equal(t, "/", written[0].Path)

	// 2. Extract from a request carrying the written cookie
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(written[0])

	token, ok := cookies.Extract(request)
	assert.True(t, ok)
	assert.Equal(t, "token-value", token)
}

/*
TestSessionCookie_Extract_Absent verifies that a missing or empty cookie
reports absence without error.
*/
func TestSessionCookie_Extract_Absent(t *testing.T) {
	cookies := sec.NewSessionCookie("session_token", false)

	// 1. No cookie at all
	token, ok := cookies.Extract(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Empty(t, token)

	// 2. Cookie present but empty
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: "session_token", Value: ""})

	token, ok = cookies.Extract(request)
	assert.False(t, ok)
	assert.Empty(t, token)
}

/*
TestSessionCookie_Clear verifies that Clear writes an expired cookie under
the same name used by Attach.
*/
func TestSessionCookie_Clear(t *testing.T) {
	cookies := sec.NewSessionCookie("session_token", false)

	recorder := httptest.NewRecorder()
	cookies.Clear(recorder)

	written := recorder.Result().Cookies()
	require.Len(t, written, 1)
	assert.Equal(t, "session_token", written[0].Name)
	assert.Empty(t, written[0].Value)
	assert.Negative(t, written[0].MaxAge)
}

/*
TestSessionCookie_SecureFlag verifies the Secure attribute follows configuration.
*/
func TestSessionCookie_SecureFlag(t *testing.T) {
	recorder := httptest.NewRecorder()
	sec.NewSessionCookie("session_token", true).Attach(recorder, "v", time.Now().Add(time.Hour))
	require.Len(t, recorder.Result().Cookies(), 1)
	assert.True(t, recorder.Result().Cookies()[0].Secure)

	recorder = httptest.NewRecorder()
	sec.NewSessionCookie("session_token", false).Attach(recorder, "v", time.Now().Add(time.Hour))
	require.Len(t, recorder.Result().Cookies(), 1)
	assert.False(t, recorder.Result().Cookies()[0].Secure)
}
