package services

import (
	"testing"
	"time"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AdminEmail:    "admin@velvetbite.example",
			AdminPassword: "correct horse battery staple",
			TokenSecret:   "test-secret-not-for-production",
			TokenExpiry:   time.Hour,
		},
	}
	return NewAuthService(cfg, gecho.NewDefaultLogger())
}

func TestLoginSuccess(t *testing.T) {
	as := testAuthService(t)

	token, claims, err := as.Login(&structs.AuthRequest{
		Email:    "admin@velvetbite.example",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "admin@velvetbite.example", claims.Email)
	assert.Equal(t, lib.AdminRole, claims.Role)

	parsed, err := as.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.Email, parsed.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	as := testAuthService(t)

	_, _, err := as.Login(&structs.AuthRequest{
		Email:    "admin@velvetbite.example",
		Password: "guess",
	})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestLoginWrongEmail(t *testing.T) {
	as := testAuthService(t)

	_, _, err := as.Login(&structs.AuthRequest{
		Email:    "intruder@velvetbite.example",
		Password: "correct horse battery staple",
	})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestLoginUnconfiguredCredentials(t *testing.T) {
	as := testAuthService(t)
	as.cfg.Auth.AdminPassword = ""
	as.cfg.Auth.AdminPasswordHash = ""

	_, _, err := as.Login(&structs.AuthRequest{
		Email:    "admin@velvetbite.example",
		Password: "",
	})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignToken(t *testing.T) {
	as := testAuthService(t)

	foreign, err := lib.GenerateAdminToken("admin@velvetbite.example", "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = as.ValidateToken(foreign)
	assert.ErrorIs(t, err, lib.ErrInvalidToken)
}
