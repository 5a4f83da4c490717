// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package cache

import (
	"errors"
	"time"

	"github.com/joindin/joindin/logger"
)

// Length of time to cache an item.
const (
	DefaultExpiryTime  = time.Duration(0)
	ForEverNeverExpiry = time.Duration(-1)
)

// Getter is an interface for getting / decoding an element from a cache.
type Getter interface {
	// Get the content associated with the given key, decoding it into the
	// given pointer.
	//
	// Returns:
	//   - nil if the value was successfully retrieved and ptrValue set
	//   - ErrCacheMiss if the value was not in the cache
	//   - an implementation specific error otherwise
	Get(key string, ptrValue interface{}) error
}

// Cache is an interface to an expiring cache. It behaves (and is modeled) like
// the Memcached interface. It is keyed by strings (250 bytes at most).
//
// Sessions stored by the cache session engine and Twitter profiles are the
// two users of this package; both treat a miss as "fetch again".
type Cache interface {
	// The Cache implements a Getter.
	Getter

	// Set the given key/value in the cache, overwriting any existing value
	// associated with that key.
	Set(key string, value interface{}, expires time.Duration) error

	// Get the content associated multiple keys at once. On success, the caller
	// may decode the values one at a time from the returned Getter.
	GetMulti(keys ...string) (Getter, error)

	// Delete the given key from the cache.
	//
	// Returns ErrCacheMiss if the value was not in the cache.
	Delete(key string) error

	// Add the given key/value to the cache ONLY IF the key does not already exist.
	//
	// Returns ErrNotStored if the key was already present in the cache.
	Add(key string, value interface{}, expires time.Duration) error

	// Set the given key/value in the cache ONLY IF the key already exists.
	//
	// Returns ErrNotStored if the key does not exist in the cache.
	Replace(key string, value interface{}, expires time.Duration) error

	// Expire all cache entries immediately.
	Flush() error
}

var (
	ErrCacheMiss    = errors.New("cache: key not found")
	ErrNotStored    = errors.New("cache: not stored")
	ErrInvalidValue = errors.New("cache: invalid value")
)

var cacheLog = logger.New("section", "cache")

// InitCache forks the cache logger from coreLogger.
func InitCache(coreLogger logger.MultiLogger) {
	cacheLog = coreLogger.New("section", "cache")
}
