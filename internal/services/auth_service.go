package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/providers/oauth"
	"github.com/careerlens/careerlens/internal/repositories"
	"github.com/careerlens/careerlens/internal/utils"
)

const (
	minUsernameLen   = 3
	minPasswordLen   = 8
	defaultOAuthName = "Google User"
	maxUsernameTries = 1000
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.PublicUser, error)
	Signup(ctx context.Context, req models.SignupRequest) error
	LoginWithOAuthToken(ctx context.Context, token string) (*models.PublicUser, error)
}

type authService struct {
	users    repositories.UserRepository
	verifier oauth.Verifier
	log      logrus.FieldLogger
}

// NewAuthService wires credential checks. A nil verifier disables OAuth
// login.
func NewAuthService(users repositories.UserRepository, verifier oauth.Verifier, log logrus.FieldLogger) AuthService {
	return &authService{users: users, verifier: verifier, log: log}
}

func normalizeUsername(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *authService) Login(ctx context.Context, username, password string) (*models.PublicUser, error) {
	const op = "AuthService.Login"

	u, err := s.users.GetUser(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found. Please sign up.", err)
		}
		return nil, utils.E(utils.CodeStore, op, "Login failed. Please try again.", err)
	}
	if !utils.CheckPassword(u.PasswordHash, password) {
		return nil, utils.E(utils.CodeUnauthorized, op, "Incorrect password.", nil)
	}
	return u.Public(), nil
}

func (s *authService) Signup(ctx context.Context, req models.SignupRequest) error {
	const op = "AuthService.Signup"

	username := normalizeUsername(req.Username)
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)

	if username == "" || name == "" || email == "" || password == "" {
		return utils.E(utils.CodeInvalidArgument, op, "All fields are required.", nil)
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return utils.E(utils.CodeInvalidArgument, op, "Username must be at least 3 characters.", nil)
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return utils.E(utils.CodeInvalidArgument, op, "Password must be at least 8 characters.", nil)
	}

	if _, err := s.users.GetUser(ctx, username); err == nil {
		return utils.E(utils.CodeConflict, op, "Username already exists. Please choose another.", utils.ErrConflict)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeStore, op, "Signup failed. Please try again.", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "Signup failed. Please try again.", err)
	}

	err = s.users.AddUser(ctx, &models.User{
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
	})
	if errors.Is(err, utils.ErrConflict) {
		return utils.E(utils.CodeConflict, op, "Username already exists. Please choose another.", err)
	}
	if err != nil {
		return utils.E(utils.CodeStore, op, "Signup failed. Please try again.", err)
	}
	s.log.WithFields(logrus.Fields{"op": op, "username": username}).Info("user signed up")
	return nil
}

func (s *authService) LoginWithOAuthToken(ctx context.Context, token string) (*models.PublicUser, error) {
	const op = "AuthService.LoginWithOAuthToken"

	if strings.TrimSpace(token) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Missing Google credential.", nil)
	}
	if s.verifier == nil {
		return nil, utils.E(utils.CodeInternal, op, "Google client not configured on server.", oauth.ErrNotConfigured)
	}

	claims, err := s.verifier.Verify(ctx, token)
	if errors.Is(err, oauth.ErrNotConfigured) {
		return nil, utils.E(utils.CodeInternal, op, "Google client not configured on server.", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "Invalid Google token.", err)
	}
	if claims.Email == "" || claims.Subject == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Invalid Google token.", nil)
	}
	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = defaultOAuthName
	}

	username, err := s.resolveOAuthUsername(ctx, claims)
	if err != nil {
		return nil, utils.E(utils.CodeStore, op, "Google sign-in failed.", err)
	}

	u, err := s.users.UpsertOAuthUser(ctx, models.OAuthIdentity{
		Username: username,
		Name:     name,
		Email:    claims.Email,
		Provider: models.ProviderGoogle,
		Subject:  claims.Subject,
		Avatar:   claims.Picture,
	})
	if err != nil {
		return nil, utils.E(utils.CodeStore, op, "Google sign-in failed.", err)
	}

	return &models.PublicUser{
		Username: u.Username,
		Name:     name,
		Email:    claims.Email,
		Avatar:   claims.Picture,
		Provider: models.ProviderGoogle,
	}, nil
}

// resolveOAuthUsername reuses the account that owns the email, else derives
// a free username from it.
func (s *authService) resolveOAuthUsername(ctx context.Context, claims *oauth.Claims) (string, error) {
	existing, err := s.users.FindUserByEmail(ctx, claims.Email)
	if err == nil {
		return existing.Username, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return "", err
	}

	base := UsernameFromEmail(claims.Email, "google_"+lastN(claims.Subject, 6))
	candidate := base
	for i := 1; i <= maxUsernameTries; i++ {
		_, err := s.users.GetUser(ctx, candidate)
		if errors.Is(err, utils.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", fmt.Errorf("no free username for base %q", base)
}

var nonUsernameChars = regexp.MustCompile(`[^a-z0-9]`)

// UsernameFromEmail lower-cases the local part and strips everything but
// [a-z0-9], using fallback when nothing is left.
func UsernameFromEmail(email, fallback string) string {
	local, _, _ := strings.Cut(email, "@")
	base := nonUsernameChars.ReplaceAllString(strings.ToLower(local), "")
	if base == "" {
		return fallback
	}
	return base
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
