package utils

import (
	"testing"
	"time"

	"seller-marketplace/shared/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 24, Issuer: "seller-bd"}}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWT("buyer@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "seller-bd", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateJWTRejects(t *testing.T) {
	cfg := testConfig()

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"expired", sign(&Claims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past}}, jwt.SigningMethodHS256, []byte("test-secret"))},
		{"wrong secret", sign(&Claims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte("other"))},
		{"no expiry", sign(&Claims{Email: "a@b.c"}, jwt.SigningMethodHS256, []byte("test-secret"))},
		{"no email", sign(&Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256, []byte("test-secret"))},
		{"alg none", sign(&Claims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token, cfg)
			assert.Error(t, err)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "abc", ExtractTokenFromHeader("bearer   abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
