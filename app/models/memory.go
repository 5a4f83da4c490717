package models

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps users in a map, for tests and db.driver=memory.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]User)}
}

func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.find(func(u *User) bool { return strings.EqualFold(u.Username, username) })
}

func (s *MemoryStore) GetUserByTwitter(ctx context.Context, screenName string) (*User, error) {
	if screenName == "" {
		return nil, ErrNotFound
	}
	return s.find(func(u *User) bool { return strings.EqualFold(u.TwitterUsername, screenName) })
}

func (s *MemoryStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetUserByUsername(ctx, username)
	switch err {
	case nil:
		return true, nil
	case ErrNotFound:
		return false, nil
	}
	return false, err
}

func (s *MemoryStore) AddUser(ctx context.Context, u *User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return ErrUsernameTaken
		}
	}
	s.nextID++
	u.ID = s.nextID
	if u.Created.IsZero() {
		u.Created = time.Now().UTC().Truncate(time.Second)
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = at.UTC().Truncate(time.Second)
	s.users[id] = u
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// find returns the lowest ID matching user.
func (s *MemoryStore) find(match func(u *User) bool) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *User
	for _, u := range s.users {
		u := u
		if match(&u) && (found == nil || u.ID < found.ID) {
			found = &u
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}
