// Copyright (c) 2026 MangroveNet. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangrovenet/mangrovenet/internal/platform/sec"
)

const testIssuer = "mangrovenet-test"

func newTestService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("test-secret-at-least-32-bytes-long!!", testIssuer)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that a generated token carries every
custom claim back through verification, including the owning country used
for admin listing scope.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateAccessToken(
		"0191d2a0-0000-7000-8000-000000000001",
		"dina",
		string(sec.RoleAdmin),
		"0191d2a0-0000-7000-8000-00000000c0de",
		time.Hour,
	)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "0191d2a0-0000-7000-8000-000000000001", claims.UserID)
	assert.Equal(t, "dina", claims.Username)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
	assert.Equal(t, "0191d2a0-0000-7000-8000-00000000c0de", claims.CountryID)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.False(t, claims.IsSuperAdmin())
	assert.True(t, claims.IsAdmin())
}

/*
TestTokenService_RejectsExpired verifies that an expired token fails
verification.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateAccessToken("user-1", "dina", string(sec.RoleAdmin), "country-1", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsForeignSignature verifies that tokens signed with a
different secret are rejected.
*/
func TestTokenService_RejectsForeignSignature(t *testing.T) {
	service := newTestService(t)
	other, err := sec.NewTokenService("a-completely-different-signing-key!!", testIssuer)
	require.NoError(t, err)

	token, err := other.GenerateAccessToken("user-1", "dina", string(sec.RoleAdmin), "country-1", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestNewTokenService_RequiresSecret verifies the empty-secret guard.
*/
func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := sec.NewTokenService("", testIssuer)
	assert.Error(t, err)
}

/*
TestUserRole_AtLeast verifies the role hierarchy used by the authorization
middleware.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleSuperAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.RoleAdmin.AtLeast(sec.RoleSuperAdmin))
	assert.False(t, sec.UserRole("VISITOR").AtLeast(sec.RoleAdmin))
}

/*
TestPasswordHashing verifies the bcrypt round-trip and mismatch behavior.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery staple", "not-a-hash"))
}
