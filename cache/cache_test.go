// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests against a generic Cache interface.
// They should pass for all implementations.
type cacheFactory func(*testing.T, time.Duration) Cache

type profile struct {
	Name       string
	ScreenName string
}

func typicalGetSet(t *testing.T, newCache cacheFactory) {
	cache := newCache(t, time.Hour)

	require.NoError(t, cache.Set("value", "foo", DefaultExpiryTime))

	value := ""
	require.NoError(t, cache.Get("value", &value))
	assert.Equal(t, "foo", value)

	stored := profile{Name: "Jane Doe", ScreenName: "jane"}
	require.NoError(t, cache.Set("twitter.profile.jane", stored, DefaultExpiryTime))

	var got profile
	require.NoError(t, cache.Get("twitter.profile.jane", &got))
	assert.Equal(t, stored, got)
}

func expiration(t *testing.T, newCache cacheFactory) {
	// memcached does not support expiration times less than 1 second.
	cache := newCache(t, time.Second)

	value := 10
	require.NoError(t, cache.Set("int", value, DefaultExpiryTime))
	time.Sleep(2 * time.Second)
	assert.Equal(t, ErrCacheMiss, cache.Get("int", &value))

	require.NoError(t, cache.Set("int", value, time.Second))
	time.Sleep(2 * time.Second)
	assert.Equal(t, ErrCacheMiss, cache.Get("int", &value))

	require.NoError(t, cache.Set("int", value, time.Hour))
	require.NoError(t, cache.Set("forever", value, ForEverNeverExpiry))
	time.Sleep(2 * time.Second)
	assert.NoError(t, cache.Get("int", &value))
	assert.NoError(t, cache.Get("forever", &value))
}

func emptyCache(t *testing.T, newCache cacheFactory) {
	cache := newCache(t, time.Hour)

	err := cache.Get("notexist", new(string))
	assert.Equal(t, ErrCacheMiss, err)

	assert.Equal(t, ErrCacheMiss, cache.Delete("notexist"))
	assert.Equal(t, ErrNotStored, cache.Replace("notexist", "value", ForEverNeverExpiry))
}

func testReplace(t *testing.T, newCache cacheFactory) {
	cache := newCache(t, time.Hour)

	// Replace in an empty cache.
	assert.Equal(t, ErrNotStored, cache.Replace("notexist", 1, ForEverNeverExpiry))

	// Set a value of 1, and replace it with 2
	require.NoError(t, cache.Set("int", 1, time.Second))
	require.NoError(t, cache.Replace("int", 2, time.Second))

	var i int
	require.NoError(t, cache.Get("int", &i))
	assert.Equal(t, 2, i)

	// Wait for it to expire and replace with 3 (unsuccessfully).
	time.Sleep(2 * time.Second)
	assert.Equal(t, ErrNotStored, cache.Replace("int", 3, time.Second))
	assert.Equal(t, ErrCacheMiss, cache.Get("int", &i))
}

func testAdd(t *testing.T, newCache cacheFactory) {
	cache := newCache(t, time.Hour)

	require.NoError(t, cache.Add("int", 1, ForEverNeverExpiry))
	assert.Equal(t, ErrNotStored, cache.Add("int", 2, ForEverNeverExpiry))

	var i int
	require.NoError(t, cache.Get("int", &i))
	assert.Equal(t, 1, i)

	require.NoError(t, cache.Delete("int"))
	assert.NoError(t, cache.Add("int", 3, ForEverNeverExpiry))
}

func testGetMulti(t *testing.T, newCache cacheFactory) {
	cache := newCache(t, time.Hour)

	m := map[string]interface{}{
		"str": "foo",
		"num": 42,
		"foo": profile{Name: "Foo"},
	}
	for key, value := range m {
		require.NoError(t, cache.Set(key, value, DefaultExpiryTime))
	}

	g, err := cache.GetMulti("str", "num", "foo", "missing")
	require.NoError(t, err)

	var str string
	require.NoError(t, g.Get("str", &str))
	assert.Equal(t, "foo", str)

	var num int
	require.NoError(t, g.Get("num", &num))
	assert.Equal(t, 42, num)

	var foo profile
	require.NoError(t, g.Get("foo", &foo))
	assert.Equal(t, "Foo", foo.Name)

	assert.Equal(t, ErrCacheMiss, g.Get("missing", &str))
}

func testFlush(t *testing.T, newCache cacheFactory) {
	cache := newCache(t, time.Hour)

	require.NoError(t, cache.Set("session:abc", "data", DefaultExpiryTime))
	require.NoError(t, cache.Flush())
	assert.Equal(t, ErrCacheMiss, cache.Get("session:abc", new(string)))
}
