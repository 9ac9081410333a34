// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

/*
HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle: login, logout,
self-service password change, and the admin-only account administration surface.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Session JWTs travel exclusively in the configured cookie; the
    handler never reads Authorization headers.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crmlocal/api/internal/platform/middleware"
	requestutil "github.com/crmlocal/api/internal/platform/request"
	"github.com/crmlocal/api/internal/platform/respond"
	"github.com/crmlocal/api/internal/platform/sec"
	"github.com/crmlocal/api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the session entry points (Login, Logout, password
// change) plus the admin-only user administration routes.
type Handler struct {
	authService *Service
	cookies     sec.SessionCookie
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, cookies sec.SessionCookie) *Handler {
	return &Handler{authService: service, cookies: cookies}
}

// Routes returns a [chi.Router] configured with session lifecycle routes.
//
// # Endpoints
//   - POST /login           : Authenticates and sets the session cookie.
//   - POST /logout          : Clears the session cookie.
//   - POST /change-password : Rotates the caller's own password.
//   - GET  /me              : Returns the authenticated user's profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
		r.Get("/me", handler.me)
	})

	return router
}

// UserRoutes returns a [chi.Router] with the admin-only account administration routes.
//
// # Endpoints
//   - GET   /                            : Lists accounts with the online flag.
//   - POST  /                            : Creates a new account.
//   - GET   /{username}                  : Returns one account.
//   - PATCH /{username}                  : Updates role / active flag.
//   - POST  /{username}/reset-password   : Replaces a password without the old one.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Get("/{username}", handler.getUser)
	router.Patch("/{username}", handler.updateUser)
	router.Post("/{username}/reset-password", handler.resetPassword)

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, issues a signed session JWT, and injects it
into the configured session cookie. The cookie is the only session transport.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: User: Authenticated user profile (token travels in the cookie)
  - 401: ErrUnauthorized: Invalid credentials or deactivated account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Attach(writer, session.Token, session.ExpiresAt)

	respond.OK(writer, map[string]any{
		FieldUser: session.User,
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Clears the session cookie. The JWT itself stays valid until its
natural expiry (no server-side blacklist), so logout is purely a client-side
credential removal.

Response:
  - 204: No Content: Cookie cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.cookies.Clear(writer)
	respond.NoContent(writer)
}

/*
Me returns the authenticated user's own profile.

GET /api/v1/auth/me

Response:
  - 200: User: Fresh profile loaded from the store
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.GetUser(request.Context(), identity.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Description: Verifies the current password before applying the new one. The
new password goes through the uniform minimum-length policy.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 400: POLICY_VIOLATION: New password below the minimum length
  - 401: ErrUnauthorized: Wrong current password or session invalid
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword)
	validator.Required(FieldNewPassword, input.NewPassword)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		identity.UserID,
		input.CurrentPassword,
		input.NewPassword,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}

// # Account Administration

/*
ListUsers returns every account with its volatile online flag.

GET /api/v1/users

Response:
  - 200: []UserPresence: Accounts ordered by username
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.authService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
CreateUser enrolls a new account.

POST /api/v1/users

Description: Admin-only. The password goes through the same policy as every
other password entry point.

Request:
  - Body: createUserRequest (Username, Password, Role)

Response:
  - 201: User: Created account
  - 400: POLICY_VIOLATION: Password below the minimum length
  - 409: ErrConflict: Username already exists
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldPassword, input.Password).
		Required(FieldRole, input.Role)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CreateUser(request.Context(), CreateUserInput{
		Username: input.Username,
		Password: input.Password,
		Role:     sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GetUser returns a single account by username.

GET /api/v1/users/{username}

Response:
  - 200: User: The account
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, FieldUsername)

	user, err := handler.authService.GetUser(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateUser applies role and active-flag changes to an account.

PATCH /api/v1/users/{username}

Description: Partial update; absent fields stay untouched. Self-demotion and
self-deactivation are rejected.

Request:
  - Body: updateUserRequest (Role?, IsActive?)

Response:
  - 200: User: The updated account
  - 403: ErrForbidden: Self-demotion / self-deactivation attempt
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, FieldUsername)

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	update := UpdateUserInput{IsActive: input.IsActive}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		update.Role = &role
	}

	user, err := handler.authService.UpdateUser(request.Context(), identity.Username, username, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ResetPassword replaces another user's password without the old one.

POST /api/v1/users/{username}/reset-password

Description: Admin-only recovery path; the uniform password policy still applies.

Request:
  - Body: resetPasswordRequest (NewPassword)

Response:
  - 200: Success: Password replaced
  - 400: POLICY_VIOLATION: Password below the minimum length
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, FieldUsername)

	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldNewPassword, input.NewPassword)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), username, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password reset successfully",
	})
}
