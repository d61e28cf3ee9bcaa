package lib

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-not-for-production"

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("admin@velvetbite.example", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@velvetbite.example", claims.Email)
	assert.Equal(t, AdminRole, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Exp, 5*time.Second)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("admin@velvetbite.example", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateAdminToken("admin@velvetbite.example", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, err := ExtractBearerToken(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractBearerToken(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := ExtractBearerToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}
