// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Memcached reads expirations above 30 days as absolute unix times.
const memcachedMaxRelativeExpiry = 30 * 24 * time.Hour

const memcachedMaxKeyLength = 250

// MemcachedOptions tunes the client.
type MemcachedOptions struct {
	Timeout      time.Duration
	MaxIdleConns int
}

// MemcachedCache wraps the Memcached client to meet the Cache interface.
type MemcachedCache struct {
	client            *memcache.Client
	defaultExpiration time.Duration
	now               func() time.Time
}

func NewMemcachedCache(hostList []string, defaultExpiration time.Duration, opts MemcachedOptions) MemcachedCache {
	client := memcache.New(hostList...)
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	if opts.MaxIdleConns > 0 {
		client.MaxIdleConns = opts.MaxIdleConns
	}
	return MemcachedCache{client: client, defaultExpiration: defaultExpiration, now: time.Now}
}

func (c MemcachedCache) Set(key string, value interface{}, expires time.Duration) error {
	return c.invoke((*memcache.Client).Set, key, value, expires)
}

func (c MemcachedCache) Add(key string, value interface{}, expires time.Duration) error {
	return c.invoke((*memcache.Client).Add, key, value, expires)
}

func (c MemcachedCache) Replace(key string, value interface{}, expires time.Duration) error {
	return c.invoke((*memcache.Client).Replace, key, value, expires)
}

func (c MemcachedCache) Get(key string, ptrValue interface{}) error {
	item, err := c.client.Get(memcachedKey(key))
	if err != nil {
		return convertMemcacheError(key, err)
	}
	return Deserialize(item.Value, ptrValue)
}

// GetMulti returns a Getter keyed by the caller's keys, not the wire keys.
func (c MemcachedCache) GetMulti(keys ...string) (Getter, error) {
	wire := make([]string, len(keys))
	for i, key := range keys {
		wire[i] = memcachedKey(key)
	}
	items, err := c.client.GetMulti(wire)
	if err != nil {
		return nil, convertMemcacheError("", err)
	}
	found := make(ItemMapGetter, len(items))
	for i, key := range keys {
		if item, ok := items[wire[i]]; ok {
			found[key] = item
		}
	}
	return found, nil
}

func (c MemcachedCache) Delete(key string) error {
	return convertMemcacheError(key, c.client.Delete(memcachedKey(key)))
}

func (c MemcachedCache) Flush() error {
	return convertMemcacheError("", c.client.FlushAll())
}

func (c MemcachedCache) invoke(f func(*memcache.Client, *memcache.Item) error,
	key string, value interface{}, expires time.Duration) error {

	b, err := Serialize(value)
	if err != nil {
		return err
	}
	return convertMemcacheError(key, f(c.client, &memcache.Item{
		Key:        memcachedKey(key),
		Value:      b,
		Expiration: c.expiration(expires),
	}))
}

// expiration converts expires to memcached's wire value, switching to an
// absolute time past the relative limit.
func (c MemcachedCache) expiration(expires time.Duration) int32 {
	switch expires {
	case DefaultExpiryTime:
		expires = c.defaultExpiration
	case ForEverNeverExpiry:
		return 0
	}
	if expires <= 0 {
		return 0
	}
	if expires > memcachedMaxRelativeExpiry {
		return int32(c.now().Add(expires).Unix())
	}
	return int32(expires / time.Second)
}

// memcachedKey returns key unchanged when memcached accepts it, otherwise a
// hash of it. Profile keys carry screen names, which are not trusted.
func memcachedKey(key string) string {
	if len(key) <= memcachedMaxKeyLength && legalMemcachedKey(key) {
		return key
	}
	sum := sha1.Sum([]byte(key))
	return "sha1:" + hex.EncodeToString(sum[:])
}

func legalMemcachedKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] <= ' ' || key[i] == 0x7f {
			return false
		}
	}
	return true
}

// ItemMapGetter implements a Getter on top of the returned item map.
type ItemMapGetter map[string]*memcache.Item

func (g ItemMapGetter) Get(key string, ptrValue interface{}) error {
	item, ok := g[key]
	if !ok {
		return ErrCacheMiss
	}

	return Deserialize(item.Value, ptrValue)
}

func convertMemcacheError(key string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memcache.ErrCacheMiss):
		return ErrCacheMiss
	case errors.Is(err, memcache.ErrNotStored):
		return ErrNotStored
	}

	cacheLog.Error("memcached error", "key", key, "error", err)
	return fmt.Errorf("memcached %s: %w", key, err)
}
