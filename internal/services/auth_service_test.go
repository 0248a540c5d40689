package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens/internal/logger"
	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/providers/oauth"
	"github.com/careerlens/careerlens/internal/repositories/storetest"
	"github.com/careerlens/careerlens/internal/utils"
)

const clientID = "web-client.apps.example.com"

func signup(t *testing.T, svc AuthService, username string) {
	t.Helper()
	require.NoError(t, svc.Signup(context.Background(), models.SignupRequest{
		Username: username, Name: "Asha Rao", Email: normalizeUsername(username) + "@example.com", Password: "correct horse",
	}))
}

func TestSignupThenLogin(t *testing.T) {
	store := storetest.NewMemoryUsers()
	svc := NewAuthService(store, nil, logger.Discard())

	signup(t, svc, "  Asha ")

	u, err := svc.Login(context.Background(), "asha", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, &models.PublicUser{Username: "asha", Name: "Asha Rao", Email: "asha@example.com"}, u)

	stored, err := store.GetUser(context.Background(), "asha")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.Equal(t, models.ProviderLocal, stored.Provider)
}

func TestSignup_DuplicateLeavesRecordUnchanged(t *testing.T) {
	store := storetest.NewMemoryUsers()
	svc := NewAuthService(store, nil, logger.Discard())
	signup(t, svc, "asha")
	before, err := store.GetUser(context.Background(), "asha")
	require.NoError(t, err)

	err = svc.Signup(context.Background(), models.SignupRequest{
		Username: "ASHA", Name: "Other", Email: "other@example.com", Password: "another password",
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	assert.Equal(t, "Username already exists. Please choose another.", utils.SafeMessage(err, ""))

	after, err := store.GetUser(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSignup_Validation(t *testing.T) {
	svc := NewAuthService(storetest.NewMemoryUsers(), nil, logger.Discard())
	tests := []struct {
		name string
		req  models.SignupRequest
		msg  string
	}{
		{"missing email", models.SignupRequest{Username: "asha", Name: "A", Password: "longenough"}, "All fields are required."},
		{"short username", models.SignupRequest{Username: "as", Name: "A", Email: "a@x.io", Password: "longenough"}, "Username must be at least 3 characters."},
		{"short password", models.SignupRequest{Username: "asha", Name: "A", Email: "a@x.io", Password: "short"}, "Password must be at least 8 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Signup(context.Background(), tt.req)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
			assert.Equal(t, tt.msg, utils.SafeMessage(err, ""))
		})
	}
}

func TestLogin_Failures(t *testing.T) {
	store := storetest.NewMemoryUsers()
	svc := NewAuthService(store, nil, logger.Discard())
	signup(t, svc, "asha")

	_, err := svc.Login(context.Background(), "asha", "wrong password")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Equal(t, "Incorrect password.", utils.SafeMessage(err, ""))

	_, err = svc.Login(context.Background(), "nobody", "whatever1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Equal(t, "User not found. Please sign up.", utils.SafeMessage(err, ""))
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func issue(t *testing.T, key *rsa.PrivateKey, sub, email, name string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, idTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Audience:  jwt.ClaimStrings{clientID},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: email,
		Name:  name,
	}).SignedString(key)
	require.NoError(t, err)
	return tok
}

func newOAuthFixture(t *testing.T) (*storetest.MemoryUsers, AuthService, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	store := storetest.NewMemoryUsers()
	svc := NewAuthService(store, oauth.NewRSAVerifier(&key.PublicKey, clientID, ""), logger.Discard())
	return store, svc, key
}

func TestLoginWithOAuthToken_CreatesAndReusesUser(t *testing.T) {
	store, svc, key := newOAuthFixture(t)

	u, err := svc.LoginWithOAuthToken(context.Background(), issue(t, key, "1234567890", "Asha.Rao@example.com", ""))
	require.NoError(t, err)
	assert.Equal(t, "asharao", u.Username)
	assert.Equal(t, "Google User", u.Name)
	assert.Equal(t, models.ProviderGoogle, u.Provider)

	again, err := svc.LoginWithOAuthToken(context.Background(), issue(t, key, "1234567890", "Asha.Rao@example.com", "Asha Rao"))
	require.NoError(t, err)
	assert.Equal(t, "asharao", again.Username)
	assert.Equal(t, 1, store.Len())
}

func TestLoginWithOAuthToken_SuffixesTakenUsername(t *testing.T) {
	store, svc, key := newOAuthFixture(t)
	signup(t, NewAuthService(store, nil, logger.Discard()), "asha")

	u, err := svc.LoginWithOAuthToken(context.Background(), issue(t, key, "42", "asha@corp.example", "Asha"))
	require.NoError(t, err)
	assert.Equal(t, "asha1", u.Username)

	local, err := store.GetUser(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderLocal, local.Provider)
}

func TestLoginWithOAuthToken_InvalidSignature(t *testing.T) {
	store, svc, _ := newOAuthFixture(t)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = svc.LoginWithOAuthToken(context.Background(), issue(t, other, "1", "eve@example.com", "Eve"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Equal(t, "Invalid Google token.", utils.SafeMessage(err, ""))
	assert.Zero(t, store.Len())
}

func TestLoginWithOAuthToken_MissingConfigAndToken(t *testing.T) {
	svc := NewAuthService(storetest.NewMemoryUsers(), nil, logger.Discard())

	_, err := svc.LoginWithOAuthToken(context.Background(), "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.LoginWithOAuthToken(context.Background(), "a.b.c")
	assert.Equal(t, "Google client not configured on server.", utils.SafeMessage(err, ""))
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "janedoe42", UsernameFromEmail("Jane.Doe+42@example.com", "x"))
	assert.Equal(t, "google_654321", UsernameFromEmail("..@example.com", "google_"+lastN("sub-987654321", 6)))
}
