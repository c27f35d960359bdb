// Copyright (c) 2026 MangroveNet. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangrovenet/mangrovenet/internal/platform/apperr"
	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
	"github.com/mangrovenet/mangrovenet/internal/users/auth"
)

// stubUserRepository serves a single in-memory account keyed by username and id.
type stubUserRepository struct {
	user    *auth.User
	created *auth.User
}

func (s *stubUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, apperr.NotFound("User")
	}
	return s.user, nil
}

func (s *stubUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, apperr.NotFound("User")
	}
	return s.user, nil
}

func (s *stubUserRepository) Create(_ context.Context, user *auth.User) error {
	s.created = user
	return nil
}

// stubTokenGenerator returns a fixed token and records what it was asked to sign.
type stubTokenGenerator struct {
	userID    string
	role      string
	countryID string
}

func (s *stubTokenGenerator) GenerateAccessToken(userID, _, role, countryID string, _ time.Duration) (string, error) {
	s.userID = userID
	s.role = role
	s.countryID = countryID
	return "signed-token", nil
}

func activeAccount(t *testing.T) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	return &auth.User{
		ID:           "0191d2a0-0000-7000-8000-00000000000a",
		Username:     "vn.admin",
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
		Status:       auth.StatusActive,
		CountryID:    "0191d2a0-0000-7000-8000-00000000000b",
	}
}

/*
TestLogin_Success verifies that valid credentials produce a session whose
token embeds the account's identity, role, and owning country.
*/
func TestLogin_Success(t *testing.T) {
	account := activeAccount(t)
	tokens := &stubTokenGenerator{}
	service := auth.NewService(&stubUserRepository{user: account}, tokens)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Username: "vn.admin",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", session.AccessToken)
	assert.Equal(t, account, session.User)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	assert.Equal(t, account.ID, tokens.userID)
	assert.Equal(t, string(sec.RoleAdmin), tokens.role)
	assert.Equal(t, account.CountryID, tokens.countryID)
}

/*
TestLogin_IndistinguishableFailures verifies that a wrong password and an
unknown username surface the exact same error, so responses cannot be used
to enumerate valid usernames.
*/
func TestLogin_IndistinguishableFailures(t *testing.T) {
	service := auth.NewService(&stubUserRepository{user: activeAccount(t)}, &stubTokenGenerator{})

	_, wrongPassword := service.Login(context.Background(), auth.LoginInput{
		Username: "vn.admin",
		Password: "incorrect",
	})
	_, unknownUser := service.Login(context.Background(), auth.LoginInput{
		Username: "no.such.user",
		Password: "correct horse battery",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)

	first := apperr.As(wrongPassword)
	second := apperr.As(unknownUser)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "UNAUTHORIZED", first.Code)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Message, second.Message)
}

/*
TestLogin_InactiveAccount verifies that a locked account is rejected with a
Forbidden error even when the password is correct.
*/
func TestLogin_InactiveAccount(t *testing.T) {
	account := activeAccount(t)
	account.Status = auth.StatusInactive
	service := auth.NewService(&stubUserRepository{user: account}, &stubTokenGenerator{})

	_, err := service.Login(context.Background(), auth.LoginInput{
		Username: "vn.admin",
		Password: "correct horse battery",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

/*
TestCreateAccount_Provisioning verifies that new accounts receive a generated
ID, an ACTIVE status, and a bcrypt hash instead of the plain-text password.
*/
func TestCreateAccount_Provisioning(t *testing.T) {
	repository := &stubUserRepository{}
	service := auth.NewService(repository, &stubTokenGenerator{})

	newAccount := &auth.User{
		Username:  "kh.admin",
		Role:      sec.RoleAdmin,
		CountryID: "0191d2a0-0000-7000-8000-00000000000c",
	}
	require.NoError(t, service.CreateAccount(context.Background(), newAccount, "initial-password"))

	require.NotNil(t, repository.created)
	assert.NotEmpty(t, repository.created.ID)
	assert.Equal(t, auth.StatusActive, repository.created.Status)
	assert.NotEqual(t, "initial-password", repository.created.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("initial-password", repository.created.PasswordHash))
}
