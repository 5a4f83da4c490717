// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package session

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// The key for the identity of the session
	SessionIDKey = "_ID"
	// The expiration date of the session
	TimestampKey = "_TS"
	// Stored under TimestampKey when the session should end with the browser session
	SessionValueName = "session"
	// The suffix of the session cookie
	SessionCookieSuffix = "_SESSION"
)

// ErrSessionValueNotFound is returned by Get for absent keys.
var ErrSessionValueNotFound = errors.New("session value not found")

// Session is the per-visitor key/value store. Keys may not contain colons or
// null bytes; values may not contain null bytes.
type Session map[string]string

func NewSession() Session {
	return Session{}
}

// ID retrieves or creates a random UUID identifying this session.
func (s Session) ID() string {
	if id, ok := s[SessionIDKey]; ok && id != "" {
		return id
	}
	s[SessionIDKey] = uuid.NewString()
	return s[SessionIDKey]
}

// GetExpiration returns when the session expires given the configured time
// to live. A zero time means when the browser closes.
func (s Session) GetExpiration(expireAfterDuration time.Duration) time.Time {
	if expireAfterDuration == 0 || s[TimestampKey] == SessionValueName {
		return time.Time{}
	}
	return time.Now().Add(expireAfterDuration)
}

// SetNoExpiration sets session to expire when browser session ends
func (s Session) SetNoExpiration() {
	s[TimestampKey] = SessionValueName
}

// SetDefaultExpiration sets session to expire after default duration
func (s Session) SetDefaultExpiration() {
	delete(s, TimestampKey)
}

// Stamp records the expiration in the session ahead of encoding.
func (s Session) Stamp(expireAfterDuration time.Duration) time.Time {
	ts := s.GetExpiration(expireAfterDuration)
	if ts.IsZero() {
		s[TimestampKey] = SessionValueName
	} else {
		s[TimestampKey] = strconv.FormatInt(ts.Unix(), 10)
	}
	return ts
}

// SessionTimeoutExpiredOrMissing reports whether the timestamp is absent or
// in the past, i.e. whether there is no valid session.
func (s Session) SessionTimeoutExpiredOrMissing() bool {
	if exp, present := s[TimestampKey]; !present {
		return true
	} else if exp == SessionValueName {
		return false
	} else if expInt, _ := strconv.ParseInt(exp, 10, 64); expInt < time.Now().Unix() {
		return true
	}
	return false
}

// Get returns the value stored under key.
func (s Session) Get(key string) (string, error) {
	if v, found := s[key]; found {
		return v, nil
	}
	return "", ErrSessionValueNotFound
}

// GetDefault returns the value stored under key or dfault.
func (s Session) GetDefault(key, dfault string) string {
	if v, found := s[key]; found {
		return v
	}
	return dfault
}

// Set stores value under key, an empty value removes the key.
func (s Session) Set(key, value string) error {
	if strings.ContainsAny(key, ":\x00") {
		return errors.New("session keys may not have colons or null bytes")
	}
	if strings.Contains(value, "\x00") {
		return errors.New("session values may not have null bytes")
	}
	if value == "" {
		s.Del(key)
		return nil
	}
	s[key] = value
	return nil
}

// Del removes key from the session.
func (s Session) Del(key string) {
	delete(s, key)
}

// Clear removes all user data, keeping the identity and expiry.
func (s Session) Clear() {
	for key := range s {
		if key == SessionIDKey || key == TimestampKey {
			continue
		}
		delete(s, key)
	}
}

// Empty reports whether the session carries no user data.
func (s Session) Empty() bool {
	for k := range s {
		if k != SessionIDKey && k != TimestampKey {
			return false
		}
	}
	return true
}

// Serialize copies the session into a plain map for a storage engine.
func (s Session) Serialize() map[string]string {
	data := make(map[string]string, len(s))
	for key, value := range s {
		if strings.ContainsAny(key, ":\x00") || strings.Contains(value, "\x00") {
			sessionLog.Error("Dropping invalid session entry", "key", key)
			continue
		}
		data[key] = value
	}
	return data
}

// Load merges data previously produced by Serialize.
func (s Session) Load(data map[string]string) {
	for key, value := range data {
		s[key] = value
	}
}
