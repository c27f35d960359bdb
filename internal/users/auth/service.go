// Copyright (c) 2026 MangroveNet. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/constants"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
	"github.com/mangrovenet/mangrovenet/pkg/uuid"
)

// # Contracts & Types

// TokenGenerator signs access tokens for authenticated sessions.
//
// Declared as an interface so the service can be unit-tested with a stub
// instead of a real signing key.
type TokenGenerator interface {
	GenerateAccessToken(userID, username, role, countryID string, timeToLive time.Duration) (string, error)
}

// LoginInput carries the credentials submitted to the login endpoint.
type LoginInput struct {
	Username string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}

// # Service Layer

// Service orchestrates the authentication business logic.
type Service struct {
	users  UserRepository
	tokens TokenGenerator
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, tokens TokenGenerator) *Service {
	return &Service{users: users, tokens: tokens}
}

/*
Login verifies credentials and issues a signed access token.

Description: Resolves the account by username, compares the bcrypt hash,
rejects INACTIVE accounts, and signs an HS256 JWT embedding the user id and
role with a one-hour expiry.

Parameters:
  - context: context.Context
  - input: LoginInput (Username, Password)

Returns:
  - *Session: Access token, expiry, and the authenticated user
  - error: apperr.Unauthorized on any credential failure
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// Account resolution. A missing account and a bad password produce the
	// same client-facing error so usernames cannot be enumerated.
	user, err := service.users.FindByUsername(context, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Credential verification
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Locked accounts keep their data but cannot sign in.
	if user.Status != StatusActive {
		return nil, apperr.Forbidden("Account is inactive")
	}

	// Token issuance
	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), user.CountryID, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(constants.AccessTokenTTL),
		User:        user,
	}, nil
}

/*
CurrentUser resolves verified token claims to the full account record.

Description: Backs the /auth/me endpoint — the canonical session-resolution
call that replaces ad hoc client-side identity state. The account is loaded
fresh with its Country so role or status changes take effect immediately.

Parameters:
  - context: context.Context
  - userID: string (UUID from verified claims)

Returns:
  - *User: The account with its Country hydrated
  - error: apperr.NotFound if the account no longer exists
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

/*
CreateAccount provisions a new administrator account.

Description: Used by operators to onboard country administrators. Hashes the
plain-text password and persists the account in ACTIVE status.

Parameters:
  - context: context.Context
  - user: *User (Role, country, and profile fields set; PasswordHash ignored)
  - password: string (Plain-text initial password)

Returns:
  - error: Validation, hashing, or persistence failures
*/
func (service *Service) CreateAccount(context context.Context, user *User, password string) error {
	hash, err := sec.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	if user.ID == "" {
		user.ID = uuid.New()
	}
	if user.Status == "" {
		user.Status = StatusActive
	}
	user.PasswordHash = hash

	return service.users.Create(context, user)
}
