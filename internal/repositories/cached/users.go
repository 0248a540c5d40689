// Package cached decorates a UserRepository with a read-through profile
// cache. Only profile views are cached; user records carry the password
// hash and always come from the backing store.
package cached

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/careerlens/careerlens/internal/cache"
	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/repositories"
)

type users struct {
	repositories.UserRepository
	cache cache.Cache
	ttl   time.Duration
	log   logrus.FieldLogger
}

func NewUsers(next repositories.UserRepository, c cache.Cache, ttl time.Duration, log logrus.FieldLogger) repositories.UserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &users{UserRepository: next, cache: c, ttl: ttl, log: log}
}

func profileKey(username string) string { return "profile:" + username }
func genKey(username string) string     { return "profile-gen:" + username }

// entry is a cached view tagged with the write generation that was current
// before the store read. Every write bumps the generation, so a fill that
// raced a write is never served.
type entry struct {
	Gen  int64               `json:"gen"`
	View *models.ProfileView `json:"view"`
}

func (u *users) GetProfile(ctx context.Context, username string) (*models.ProfileView, error) {
	l := u.log.WithField("username", username)

	var gen int64
	if _, err := u.cache.GetJSON(ctx, genKey(username), &gen); err != nil {
		l.WithError(err).Warn("profile cache read failed")
		return u.UserRepository.GetProfile(ctx, username)
	}

	var e entry
	hit, err := u.cache.GetJSON(ctx, profileKey(username), &e)
	if err != nil {
		l.WithError(err).Warn("profile cache read failed")
	}
	if hit && e.Gen == gen && e.View != nil {
		return e.View, nil
	}

	v, err := u.UserRepository.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := u.cache.SetJSON(ctx, profileKey(username), entry{Gen: gen, View: v}, u.ttl); err != nil {
		l.WithError(err).Warn("profile cache write failed")
	}
	return v, nil
}

func (u *users) UpdateProfile(ctx context.Context, username string, fields map[string]string) (bool, error) {
	ok, err := u.UserRepository.UpdateProfile(ctx, username, fields)
	u.invalidate(ctx, username)
	return ok, err
}

func (u *users) UpsertOAuthUser(ctx context.Context, id models.OAuthIdentity) (*models.User, error) {
	usr, err := u.UserRepository.UpsertOAuthUser(ctx, id)
	u.invalidate(ctx, id.Username)
	return usr, err
}

func (u *users) DeleteUser(ctx context.Context, username string) (bool, error) {
	ok, err := u.UserRepository.DeleteUser(ctx, username)
	u.invalidate(ctx, username)
	return ok, err
}

// invalidate runs after the store write: it bumps the generation first so
// in-flight fills are discarded, then drops the current entry.
func (u *users) invalidate(ctx context.Context, username string) {
	l := u.log.WithField("username", username)
	if _, err := u.cache.Incr(ctx, genKey(username)); err != nil {
		l.WithError(err).Warn("profile cache generation bump failed")
	}
	if err := u.cache.Del(ctx, profileKey(username)); err != nil {
		l.WithError(err).Warn("profile cache invalidation failed")
	}
}
