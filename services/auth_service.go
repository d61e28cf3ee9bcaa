package services

import (
	"time"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

// AuthService authenticates the single trusted operator against configured
// credentials and issues admin tokens. There is no user store.
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
	}
}

// Login verifies the configured admin credentials and returns a signed token.
// Email mismatch, password mismatch and unconfigured credentials all map to
// the same error so the response never leaks which check failed.
func (as *AuthService) Login(authRequest *structs.AuthRequest) (string, *structs.AuthClaims, error) {
	startTime := time.Now()

	if !as.verifyCredentials(authRequest.Email, authRequest.Password) {
		as.logger.Debug("Invalid admin login attempt", gecho.Field("identifier", authRequest.Email))
		return "", nil, lib.ErrInvalidCredentials
	}

	token, err := lib.GenerateAdminToken(as.cfg.Auth.AdminEmail, as.cfg.Auth.TokenSecret, as.cfg.Auth.TokenExpiry)
	if err != nil {
		as.logger.Error("Failed to generate admin token", gecho.Field("error", err))
		return "", nil, err
	}

	now := time.Now()
	claims := &structs.AuthClaims{
		Email: as.cfg.Auth.AdminEmail,
		Role:  lib.AdminRole,
		Iat:   now,
		Exp:   now.Add(as.cfg.Auth.TokenExpiry),
	}

	as.logger.Debug("Admin logged in successfully", gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()))
	return token, claims, nil
}

// verifyCredentials compares against the configured admin email and password.
// When ADMIN_PASSWORD_HASH is set it takes precedence over the plain
// ADMIN_PASSWORD; both comparisons run in constant time.
func (as *AuthService) verifyCredentials(email, password string) bool {
	auth := as.cfg.Auth
	if auth.AdminEmail == "" {
		return false
	}

	emailOK := lib.SecureCompare([]byte(email), []byte(auth.AdminEmail))

	var passwordOK bool
	switch {
	case auth.AdminPasswordHash != "":
		valid, err := lib.VerifyPassword(password, auth.AdminPasswordHash)
		if err != nil {
			as.logger.Error("Failed to verify admin password hash", gecho.Field("error", err))
			return false
		}
		passwordOK = valid
	case auth.AdminPassword != "":
		passwordOK = lib.SecureCompare([]byte(password), []byte(auth.AdminPassword))
	default:
		return false
	}

	return emailOK && passwordOK
}

// ValidateToken parses a bearer token and returns its claims.
func (as *AuthService) ValidateToken(token string) (*structs.AuthClaims, error) {
	return lib.ParseToken(token, as.cfg.Auth.TokenSecret)
}
