package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "kasi",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{RoleCustomer})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "kasi", claims.Issuer)
	assert.True(t, claims.HasRole(RoleCustomer))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := NewJWTService(JWTConfig{Secret: "different-secret", Issuer: "kasi"})
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	svc := newTestService(t)

	token, err := issuer.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issuer")
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	expired, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "kasi",
		Expiration: -time.Minute,
	})
	require.NoError(t, err)

	token, err := expired.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = newTestService(t).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := newTestService(t).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestNewJWTService_RequiresSecretOrKey(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

func testRSAKeyPair(t *testing.T) (privatePEM, publicPEM string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM = string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM = string(pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	}))
	return privatePEM, publicPEM
}

func TestJWTService_RS256RoundTrip(t *testing.T) {
	privatePEM, _ := testRSAKeyPair(t)
	svc, err := NewJWTService(JWTConfig{PrivateKeyPEM: privatePEM, Issuer: "kasi"})
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(userID, []string{RoleOfficer})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasRole(RoleOfficer))
}

func TestJWTService_RS256ValidationOnly(t *testing.T) {
	privatePEM, publicPEM := testRSAKeyPair(t)

	signer, err := NewJWTService(JWTConfig{PrivateKeyPEM: privatePEM, Issuer: "kasi"})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: publicPEM, Issuer: "kasi"})
	require.NoError(t, err)

	token, err := signer.GenerateToken(uuid.New(), []string{RoleCustomer})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(RoleCustomer))

	_, err = validator.GenerateToken(uuid.New(), nil)
	assert.Error(t, err, "a validator without a private key must not sign")
}

func TestJWTService_RS256RejectsHMACToken(t *testing.T) {
	_, publicPEM := testRSAKeyPair(t)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: publicPEM, Issuer: "kasi"})
	require.NoError(t, err)

	hmacToken, err := newTestService(t).GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(hmacToken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "signing method")
}

func TestNewJWTService_RejectsMalformedKeys(t *testing.T) {
	_, err := NewJWTService(JWTConfig{PrivateKeyPEM: "not a key"})
	assert.Error(t, err)
	_, err = NewJWTService(JWTConfig{PublicKeyPEM: "not a key"})
	assert.Error(t, err)
}
