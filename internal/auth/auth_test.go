package auth

import (
	"testing"
	"time"

	"roastery/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Key:           "test-signing-key",
		Issuer:        "roastery",
		Audience:      "roastery-admin",
		ExpiryMinutes: 60,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())

	token, err := issuer.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())
	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Key = "a-different-key"
	other := NewTokenIssuer(otherCfg)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Issuer = "someone-else"
	token, err := NewTokenIssuer(cfg).Issue("admin")
	require.NoError(t, err)

	_, err = NewTokenIssuer(testJWTConfig()).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Audience = "another-audience"
	token, err := NewTokenIssuer(cfg).Issue("admin")
	require.NoError(t, err)

	_, err = NewTokenIssuer(testJWTConfig()).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	issuer := NewTokenIssuer(cfg)

	// Build an already-expired token with the same key and claims layout.
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Key))
	require.NoError(t, err)

	_, err = issuer.Verify(expired)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())

	_, err := issuer.Verify("not-a-token")
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}
