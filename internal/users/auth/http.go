// Copyright (c) 2026 MangroveNet. All rights reserved.

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for administrator sign-in and session resolution.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles JWT orchestration and access token cookie injection.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
	"github.com/mangrovenet/mangrovenet/internal/platform/middleware"
	requestutil "github.com/mangrovenet/mangrovenet/internal/platform/request"
	"github.com/mangrovenet/mangrovenet/internal/platform/respond"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
	"github.com/mangrovenet/mangrovenet/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a JWT.
//   - GET  /me    : Resolves the current session to its account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Post("/logout", handler.logout)
	})

	return router
}

// RegisterAdminRoutes mounts account management under the admin subtree.
// The caller is expected to have applied RequireAuth already.
//
// # Endpoints
//   - POST /users : Provisions a country administrator account.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleSuperAdmin))
		r.Post("/users", handler.createAccount)
	})
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Login authenticates an administrator and establishes a session.

POST /api/auth/login

Description: Verifies credentials, generates a JWT access token, and injects
a secure token cookie into the response. The same token is also returned in
the body for clients that prefer the Authorization header.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Session: Access token and User profile
  - 401: ErrUnauthorized: Invalid credentials
  - 403: ErrForbidden: Account inactive
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

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.User,
	})
}

/*
Me returns the account behind the current session.

GET /api/auth/me

Description: Resolves the verified token claims to the full account record,
including the administrator's Country. Clients call this on page load
instead of persisting identity state locally.

Response:
  - 200: User: The authenticated account
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Account was removed after the token was issued
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type createAccountRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Institution string `json:"institution"`
	Position    string `json:"position"`
	Role        string `json:"role"`
	CountryID   string `json:"countryId"`
}

/*
CreateAccount provisions a new administrator account.

POST /api/admin/users

Description: Network-wide reviewers onboard country administrators here. The
initial password is supplied in plain text and stored as a bcrypt hash; the
account starts ACTIVE.

Request:
  - Body: createAccountRequest

Response:
  - 201: User: The provisioned account (password hash omitted)
  - 400: ErrValidation: Missing or malformed fields
  - 409: ErrConflict: Username already taken
*/
func (handler *Handler) createAccount(writer http.ResponseWriter, request *http.Request) {
	var input createAccountRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldPassword, input.Password, 8).
		Email("email", input.Email).
		Required("countryId", input.CountryID).
		UUID("countryId", input.CountryID).
		OneOf("role", input.Role, string(sec.RoleAdmin), string(sec.RoleSuperAdmin))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user := &User{
		Username:    input.Username,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Institution: input.Institution,
		Position:    input.Position,
		Role:        sec.UserRole(input.Role),
		CountryID:   input.CountryID,
	}

	if err := handler.authService.CreateAccount(request.Context(), user, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Logout terminates the current session on the client.

POST /api/auth/logout

Description: Clears the token cookie. Access tokens are short-lived and
stateless, so no server-side revocation list is consulted.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}
