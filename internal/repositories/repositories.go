// Package repositories defines the persistence ports used by services.
package repositories

import (
	"context"

	"github.com/careerlens/careerlens/internal/models"
)

// UserRepository stores user accounts keyed by lower-cased username.
// Lookups return utils.ErrNotFound for missing users; AddUser returns
// utils.ErrConflict when the username is taken.
type UserRepository interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	AddUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertOAuthUser(ctx context.Context, id models.OAuthIdentity) (*models.User, error)
	GetProfile(ctx context.Context, username string) (*models.ProfileView, error)
	// UpdateProfile writes only the given profile keys. It reports false when
	// the user does not exist.
	UpdateProfile(ctx context.Context, username string, fields map[string]string) (bool, error)
	DeleteUser(ctx context.Context, username string) (bool, error)
}

// NewProfileView builds the read model with defaults applied.
func NewProfileView(u *models.User) *models.ProfileView {
	provider := u.Provider
	if provider == "" {
		provider = models.ProviderLocal
	}
	return &models.ProfileView{
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Provider: provider,
		Profile:  u.Profile,
	}
}
