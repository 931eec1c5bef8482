package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispcore/ipam/internal/api/middleware"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate_JWT(t *testing.T) {
	key, pub := generateKey(t)
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: pub})
	require.NoError(t, err)

	token := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "noc-operator",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := auth.Authenticate("Bearer " + token)
	require.True(t, result.Success, "%v", result.Error)
	assert.Equal(t, "jwt", result.AuthType)
	assert.Equal(t, "noc-operator", result.AuthSubject)
}

func TestAuthenticate_ExpiredJWT(t *testing.T) {
	key, pub := generateKey(t)
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: pub})
	require.NoError(t, err)

	token := signToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	result := auth.Authenticate("Bearer " + token)
	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestAuthenticate_WrongSigner(t *testing.T) {
	_, pub := generateKey(t)
	other, _ := generateKey(t)
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: pub})
	require.NoError(t, err)

	result := auth.Authenticate("Bearer " + signToken(t, other, jwt.RegisteredClaims{}))
	assert.False(t, result.Success)
}

func TestAuthenticate_APIKey(t *testing.T) {
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"", "k1"}})
	require.NoError(t, err)

	assert.True(t, auth.Authenticate("ApiKey k1").Success)
	assert.False(t, auth.Authenticate("ApiKey k2").Success)
	assert.False(t, auth.Authenticate("ApiKey ").Success)
}

func TestAuthenticate_Malformed(t *testing.T) {
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"k1"}})
	require.NoError(t, err)

	for _, header := range []string{"", "k1", "Basic dXNlcjpwYXNz", "Bearer abc"} {
		result := auth.Authenticate(header)
		assert.False(t, result.Success, header)
		assert.Error(t, result.Error, header)
	}
}

func TestNewAuthenticator_BadKey(t *testing.T) {
	_, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: "not a pem"})
	assert.Error(t, err)
}
