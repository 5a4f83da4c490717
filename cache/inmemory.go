// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package cache

import (
	"fmt"
	"reflect"
	"time"

	"github.com/patrickmn/go-cache"
)

// InMemoryCache keeps values in process. Values are stored as is, so Get
// requires a pointer to the stored type.
type InMemoryCache struct {
	cache *cache.Cache
}

func NewInMemoryCache(defaultExpiration time.Duration) InMemoryCache {
	return InMemoryCache{cache: cache.New(defaultExpiration, time.Minute)}
}

func (c InMemoryCache) Get(key string, ptrValue interface{}) error {
	value, found := c.cache.Get(key)
	if !found {
		return ErrCacheMiss
	}

	v := reflect.ValueOf(ptrValue)
	if v.Kind() == reflect.Ptr && v.Elem().CanSet() {
		stored := reflect.ValueOf(value)
		if stored.Type().AssignableTo(v.Elem().Type()) {
			v.Elem().Set(stored)
			return nil
		}
	}

	err := fmt.Errorf("cache: attempt to get %s, but can not set value %v", key, v)
	cacheLog.Error(err.Error())
	return err
}

func (c InMemoryCache) GetMulti(keys ...string) (Getter, error) {
	return c, nil
}

func (c InMemoryCache) Set(key string, value interface{}, expires time.Duration) error {
	// go-cache understands DefaultExpiryTime (0) and ForEverNeverExpiry (-1)
	c.cache.Set(key, value, expires)
	return nil
}

func (c InMemoryCache) Add(key string, value interface{}, expires time.Duration) error {
	if err := c.cache.Add(key, value, expires); err != nil {
		return ErrNotStored
	}
	return nil
}

func (c InMemoryCache) Replace(key string, value interface{}, expires time.Duration) error {
	if err := c.cache.Replace(key, value, expires); err != nil {
		return ErrNotStored
	}
	return nil
}

func (c InMemoryCache) Delete(key string) error {
	if _, found := c.cache.Get(key); !found {
		return ErrCacheMiss
	}
	c.cache.Delete(key)
	return nil
}

func (c InMemoryCache) Flush() error {
	c.cache.Flush()
	return nil
}
