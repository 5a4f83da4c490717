package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/joindin/joindin/config"
)

// New builds the cache selected by app.conf:
//
//	cache.expires    default expiry (1h)
//	cache.redis      use redis at cache.hosts (first host), cache.redis.password
//	cache.memcached  use memcached at cache.hosts, cache.memcached.timeout (ms)
//	                 and cache.memcached.maxidle
//
// Otherwise an in-memory cache is returned.
func New(c *config.Context) (Cache, error) {
	defaultExpiration, err := config.Duration(c, "cache.expires", time.Hour)
	if err != nil {
		return nil, err
	}

	hosts := splitHosts(c.StringDefault("cache.hosts", ""))
	switch {
	case c.BoolDefault("cache.redis", false):
		if len(hosts) == 0 {
			return nil, fmt.Errorf("cache: redis enabled but no cache.hosts specified")
		}
		return NewRedisCache(hosts[0], c.StringDefault("cache.redis.password", ""), defaultExpiration, RedisOptions{
			MaxIdle:        c.IntDefault("cache.redis.maxidle", 5),
			MaxActive:      c.IntDefault("cache.redis.maxactive", 0),
			IdleTimeout:    time.Duration(c.IntDefault("cache.redis.idletimeout", 240)) * time.Second,
			ConnectTimeout: time.Duration(c.IntDefault("cache.redis.timeout.connect", 10000)) * time.Millisecond,
			ReadTimeout:    time.Duration(c.IntDefault("cache.redis.timeout.read", 5000)) * time.Millisecond,
			WriteTimeout:   time.Duration(c.IntDefault("cache.redis.timeout.write", 5000)) * time.Millisecond,
		}), nil
	case c.BoolDefault("cache.memcached", false):
		if len(hosts) == 0 {
			return nil, fmt.Errorf("cache: memcached enabled but no cache.hosts specified")
		}
		return NewMemcachedCache(hosts, defaultExpiration, MemcachedOptions{
			Timeout:      time.Duration(c.IntDefault("cache.memcached.timeout", 500)) * time.Millisecond,
			MaxIdleConns: c.IntDefault("cache.memcached.maxidle", 5),
		}), nil
	}
	return NewInMemoryCache(defaultExpiration), nil
}

func splitHosts(list string) []string {
	var hosts []string
	for _, host := range strings.Split(list, ",") {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}
