// Package storetest provides an in-memory UserRepository for tests and
// local runs without MongoDB.
package storetest

import (
	"context"
	"sync"
	"time"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/repositories"
	"github.com/careerlens/careerlens/internal/utils"
)

type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]models.User

	// Err, when set, is returned by every call.
	Err error
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[string]models.User{}}
}

var _ repositories.UserRepository = (*MemoryUsers)(nil)

func (m *MemoryUsers) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

func (m *MemoryUsers) GetUser(_ context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryUsers) AddUser(_ context.Context, u *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return utils.ErrConflict
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Provider == "" {
		u.Provider = models.ProviderLocal
	}
	m.users[u.Username] = *u
	return nil
}

func (m *MemoryUsers) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (m *MemoryUsers) UpsertOAuthUser(_ context.Context, id models.OAuthIdentity) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	u, ok := m.users[id.Username]
	if !ok {
		u = models.User{Username: id.Username, CreatedAt: now}
	}
	u.Name = id.Name
	u.Email = id.Email
	u.Provider = id.Provider
	u.Subject = id.Subject
	u.Avatar = id.Avatar
	u.UpdatedAt = now
	m.users[id.Username] = u
	return &u, nil
}

func (m *MemoryUsers) GetProfile(ctx context.Context, username string) (*models.ProfileView, error) {
	u, err := m.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return repositories.NewProfileView(u), nil
}

func (m *MemoryUsers) UpdateProfile(_ context.Context, username string, fields map[string]string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "phone":
			u.Profile.Phone = v
		case "bio":
			u.Profile.Bio = v
		case "targetRole":
			u.Profile.TargetRole = v
		case "experience":
			u.Profile.Experience = v
		case "location":
			u.Profile.Location = v
		case "linkedin":
			u.Profile.LinkedIn = v
		case "github":
			u.Profile.GitHub = v
		case "profileImage":
			u.Profile.ProfileImage = v
		case "bannerImage":
			u.Profile.BannerImage = v
		}
	}
	u.UpdatedAt = time.Now().UTC()
	m.users[username] = u
	return true, nil
}

func (m *MemoryUsers) DeleteUser(_ context.Context, username string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; !ok {
		return false, nil
	}
	delete(m.users, username)
	return true, nil
}
