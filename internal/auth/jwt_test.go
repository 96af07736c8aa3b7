package auth

import (
	"testing"
	"time"

	"constru_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTTL = 60
	cfg.JWT.RefreshTTLHours = 720
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken("user-123", "customer")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken("user-123", "customer")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "different-secret"
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenExpired(t *testing.T) {
	setTestConfig(t)

	claims := &Claims{
		UserID: "user-123",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenRejectsWrongAlgorithm(t *testing.T) {
	setTestConfig(t)

	// alg=none style tokens must never validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-123"})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
