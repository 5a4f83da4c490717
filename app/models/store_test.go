package models

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T) UserStore

func newMemory(t *testing.T) UserStore {
	return NewMemoryStore()
}

func newSQLite(t *testing.T) UserStore {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "joindin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

var stores = map[string]storeFactory{
	"memory": newMemory,
	"sqlite": newSQLite,
}

func forEachStore(t *testing.T, test func(t *testing.T, store UserStore)) {
	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			test(t, factory(t))
		})
	}
}

func TestAddAndGetUser(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		u := &User{
			Username:        "janedoe",
			FullName:        "Jane Doe",
			TwitterUsername: "JaneDoe",
			Active:          true,
		}
		require.NoError(t, store.AddUser(ctx, u))
		assert.NotZero(t, u.ID)
		assert.False(t, u.Created.IsZero())

		got, err := store.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, got.Username)
		assert.Equal(t, "Jane Doe", got.FullName)
		assert.Equal(t, "JaneDoe", got.TwitterUsername)
		assert.True(t, got.Active)
		assert.False(t, got.Admin)
		assert.Empty(t, got.Password)
		assert.Empty(t, got.Email)
		assert.True(t, got.LastLogin.IsZero())
		assert.WithinDuration(t, u.Created, got.Created, time.Second)

		_, err = store.GetUser(ctx, u.ID+100)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetUserByTwitterIgnoresCase(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		require.NoError(t, store.AddUser(ctx, &User{Username: "jane", TwitterUsername: "JaneDoe"}))

		got, err := store.GetUserByTwitter(ctx, "janedoe")
		require.NoError(t, err)
		assert.Equal(t, "jane", got.Username)

		_, err = store.GetUserByTwitter(ctx, "someoneelse")
		assert.ErrorIs(t, err, ErrNotFound)

		// Accounts without Twitter never match an empty screen name.
		require.NoError(t, store.AddUser(ctx, &User{Username: "plain"}))
		_, err = store.GetUserByTwitter(ctx, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUsernameTaken(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		require.NoError(t, store.AddUser(ctx, &User{Username: "jane"}))

		err := store.AddUser(ctx, &User{Username: "Jane"})
		assert.ErrorIs(t, err, ErrUsernameTaken)

		exists, err := store.UsernameExists(ctx, "JANE")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.UsernameExists(ctx, "john")
		require.NoError(t, err)
		assert.False(t, exists)

		got, err := store.GetUserByUsername(ctx, "jAnE")
		require.NoError(t, err)
		assert.Equal(t, "jane", got.Username)
	})
}

func TestUpdateLastLogin(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()
		u := &User{Username: "jane"}
		require.NoError(t, store.AddUser(ctx, u))

		at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
		require.NoError(t, store.UpdateLastLogin(ctx, u.ID, at))

		got, err := store.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, at, got.LastLogin)

		assert.ErrorIs(t, store.UpdateLastLogin(ctx, u.ID+1, at), ErrNotFound)
	})
}

func TestFindAvailableUsername(t *testing.T) {
	forEachStore(t, func(t *testing.T, store UserStore) {
		ctx := context.Background()

		name, err := FindAvailableUsername(ctx, store, "janedoe")
		require.NoError(t, err)
		assert.Equal(t, "janedoe", name)

		for _, taken := range []string{"janedoe", "janedoe1", "janedoe2"} {
			require.NoError(t, store.AddUser(ctx, &User{Username: taken}))
		}
		name, err = FindAvailableUsername(ctx, store, "JaneDoe")
		require.NoError(t, err)
		assert.Equal(t, "JaneDoe3", name)

		name, err = FindAvailableUsername(ctx, store, "  ")
		require.NoError(t, err)
		assert.Equal(t, "user", name)
	})
}

func TestOpen(t *testing.T) {
	store, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open("sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	assert.NoError(t, store.Close())

	_, err = Open("mysql", "")
	assert.Error(t, err)

	_, err = OpenSQLite(" ")
	assert.Error(t, err)
}

func TestUserHelpers(t *testing.T) {
	u := &User{ID: 12, Username: "jane"}
	assert.Equal(t, "jane", u.DisplayName())
	assert.Equal(t, "12", u.IDString())
	assert.False(t, u.HasPassword())

	u.FullName = "Jane Doe"
	u.Password = "x"
	assert.Equal(t, "Jane Doe", u.DisplayName())
	assert.True(t, u.HasPassword())
}
