// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package cache

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// These tests require memcached running on localhost:11211 (the default)
const testServer = "localhost:11211"

var newMemcachedCache = func(t *testing.T, defaultExpiration time.Duration) Cache {
	c, err := net.Dial("tcp", testServer)
	if err != nil {
		t.Skipf("memcached not reachable at %s: %s", testServer, err)
	}
	_, err = c.Write([]byte("flush_all\r\n"))
	c.Close()
	if err != nil {
		t.Skipf("memcached not usable: %s", err)
	}
	return NewMemcachedCache([]string{testServer}, defaultExpiration, MemcachedOptions{Timeout: time.Second})
}

func TestMemcachedCache_TypicalGetSet(t *testing.T) {
	typicalGetSet(t, newMemcachedCache)
}

func TestMemcachedCache_Expiration(t *testing.T) {
	expiration(t, newMemcachedCache)
}

func TestMemcachedCache_EmptyCache(t *testing.T) {
	emptyCache(t, newMemcachedCache)
}

func TestMemcachedCache_Replace(t *testing.T) {
	testReplace(t, newMemcachedCache)
}

func TestMemcachedCache_Add(t *testing.T) {
	testAdd(t, newMemcachedCache)
}

func TestMemcachedCache_GetMulti(t *testing.T) {
	testGetMulti(t, newMemcachedCache)
}

func TestMemcachedKey(t *testing.T) {
	assert.Equal(t, "twitter.profile.janedoe", memcachedKey("twitter.profile.janedoe"))

	for _, key := range []string{"", "twitter.profile.jane doe", "line\nbreak", strings.Repeat("k", 251)} {
		wire := memcachedKey(key)
		assert.True(t, strings.HasPrefix(wire, "sha1:"), key)
		assert.Len(t, wire, len("sha1:")+40)
		assert.Equal(t, wire, memcachedKey(key))
	}
}

func TestMemcachedExpiration(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	c := MemcachedCache{defaultExpiration: time.Hour, now: func() time.Time { return now }}

	assert.Equal(t, int32(3600), c.expiration(DefaultExpiryTime))
	assert.Equal(t, int32(0), c.expiration(ForEverNeverExpiry))
	assert.Equal(t, int32(90), c.expiration(90*time.Second))
	assert.Equal(t, int32(30*24*3600), c.expiration(30*24*time.Hour))
	assert.Equal(t, int32(now.Add(31*24*time.Hour).Unix()), c.expiration(31*24*time.Hour))
}
