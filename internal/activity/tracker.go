package activity

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/careerlens/careerlens/internal/models"
)

// Tracker loads State from Storage, applies events and writes it back.
type Tracker struct {
	mu    sync.Mutex
	store Storage
	now   func() time.Time
}

func NewTracker(store Storage) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

func (t *Tracker) Load() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

func (t *Tracker) load() (State, error) {
	var s State
	for key, dst := range map[string]any{
		KeyStats:         &s.Stats,
		KeyHistory:       &s.History,
		KeyResumes:       &s.Resumes,
		KeySkillProgress: &s.SkillProgress,
		KeyBadges:        &s.Badges,
	} {
		if err := t.get(key, dst); err != nil {
			return State{}, err
		}
	}
	return s, nil
}

// save writes every activity key in one storage call so a failed write
// leaves the previous state intact.
func (t *Tracker) save(s State) error {
	values := make(map[string]string, 5)
	for key, v := range map[string]any{
		KeyStats:         s.Stats,
		KeyHistory:       s.History,
		KeyResumes:       s.Resumes,
		KeySkillProgress: s.SkillProgress,
		KeyBadges:        s.Badges,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = string(b)
	}
	if err := t.store.SetMany(values); err != nil {
		return fmt.Errorf("write activity: %w", err)
	}
	return nil
}

// Record applies e to the stored state and returns newly earned badges.
func (t *Tracker) Record(e Event) ([]Badge, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.load()
	if err != nil {
		return nil, err
	}
	next, earned, err := Apply(s, e, t.now())
	if err != nil {
		return nil, err
	}
	if err := t.save(next); err != nil {
		return nil, err
	}
	return earned, nil
}

func (t *Tracker) SetCurrentUser(u *models.PublicUser) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.set(KeyCurrentUser, u)
}

// CurrentUser returns nil when nobody is logged in.
func (t *Tracker) CurrentUser() (*models.PublicUser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var u *models.PublicUser
	if err := t.get(KeyCurrentUser, &u); err != nil {
		return nil, err
	}
	return u, nil
}

// Clear forgets the current user and all tracked activity.
func (t *Tracker) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, key := range allKeys {
		if err := t.store.Remove(key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

func (t *Tracker) get(key string, dst any) error {
	raw, ok, err := t.store.Get(key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (t *Tracker) set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := t.store.Set(key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
