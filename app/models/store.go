// Package models holds the user accounts and their stores.
package models

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("models: user not found")
	// ErrUsernameTaken is returned by AddUser for a username already in use.
	ErrUsernameTaken = errors.New("models: username taken")
)

// UserStore persists users. Username and Twitter lookups ignore case.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByTwitter(ctx context.Context, screenName string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// AddUser inserts u, filling in its ID and Created time.
	AddUser(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	Close() error
}

// Open returns the store for driver: "sqlite" (at path) or "memory".
func Open(driver, path string) (UserStore, error) {
	switch driver {
	case "sqlite", "":
		return OpenSQLite(path)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("models: unknown db.driver %q", driver)
}

// FindAvailableUsername returns base when it is free, otherwise the first free
// of base1, base2, .... An empty base is treated as "user".
func FindAvailableUsername(ctx context.Context, store UserStore, base string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := store.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("find available username for %s: %w", base, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}
}
