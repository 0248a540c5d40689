package oauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

const audience = "careerlens-web.apps.example.com"

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return k
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() idClaims {
	return idClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "109876543210",
			Audience:  jwt.ClaimStrings{audience},
			Issuer:    "https://id.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:   "asha.rao@example.com",
		Name:    "Asha Rao",
		Picture: "https://img.example.com/a.png",
	}
}

func TestRSAVerifier(t *testing.T) {
	key := newKey(t)
	v := NewRSAVerifier(&key.PublicKey, audience, "https://id.example.com")

	got, err := v.Verify(context.Background(), sign(t, key, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, &Claims{
		Subject: "109876543210",
		Email:   "asha.rao@example.com",
		Name:    "Asha Rao",
		Picture: "https://img.example.com/a.png",
	}, got)
}

func TestRSAVerifier_Rejects(t *testing.T) {
	key := newKey(t)
	other := newKey(t)
	v := NewRSAVerifier(&key.PublicKey, audience, "https://id.example.com")

	wrongAud := validClaims()
	wrongAud.Audience = jwt.ClaimStrings{"someone-else"}
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	wrongIss := validClaims()
	wrongIss.Issuer = "https://evil.example.com"

	tests := []struct {
		name  string
		token string
	}{
		{"foreign signature", sign(t, other, validClaims())},
		{"wrong audience", sign(t, key, wrongAud)},
		{"expired", sign(t, key, expired)},
		{"wrong issuer", sign(t, key, wrongIss)},
		{"garbage", "not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRSAVerifier_NotConfigured(t *testing.T) {
	var v *RSAVerifier
	_, err := v.Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoadRSAVerifier(t *testing.T) {
	key := newKey(t)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "idp.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	v, err := LoadRSAVerifier(path, audience, "")
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), sign(t, key, validClaims()))
	assert.NoError(t, err)
}

func TestGoogleVerifier(t *testing.T) {
	_, err := NewGoogleVerifier("").Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)

	g := NewGoogleVerifier(audience)
	g.validate = func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
		if token != "good" || aud != audience {
			return nil, errors.New("idtoken: invalid token")
		}
		return &idtoken.Payload{
			Subject: "42",
			Claims:  map[string]interface{}{"email": "g@example.com", "name": "G User"},
		}, nil
	}

	c, err := g.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "42", c.Subject)
	assert.Equal(t, "g@example.com", c.Email)
	assert.Equal(t, "", c.Picture)

	_, err = g.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
