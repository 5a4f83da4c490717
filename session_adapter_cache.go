package joindin

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/session"
)

const sessionCacheKeyPrefix = "session:"

// SessionCacheEngine stores session data in the cache. The cookie only holds
// the signed session id.
type SessionCacheEngine struct {
	SessionEngineOptions
}

func newCacheEngine(o SessionEngineOptions) (SessionEngine, error) {
	if o.Cache == nil {
		return nil, errors.New("session engine cache: no cache configured")
	}
	return &SessionCacheEngine{o}, nil
}

// requestID returns the verified session id from the request cookie.
func (e *SessionCacheEngine) requestID(c *Controller) (string, bool) {
	cookie, err := c.Request.Cookie(c.Server.Settings.CookiePrefix + session.SessionCookieSuffix)
	if err != nil {
		return "", false
	}

	hyphen := strings.Index(cookie.Value, "-")
	if hyphen == -1 || hyphen >= len(cookie.Value)-1 {
		return "", false
	}
	sig, id := cookie.Value[:hyphen], cookie.Value[hyphen+1:]
	if !c.Server.Signer.Verify(id, sig) {
		e.Log.Warn("Session id signature failed")
		return "", false
	}
	return id, true
}

func (e *SessionCacheEngine) Decode(c *Controller) {
	c.Session = session.NewSession()
	id, ok := e.requestID(c)
	if !ok {
		return
	}

	var data map[string]string
	if err := e.Cache.Get(sessionCacheKeyPrefix+id, &data); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			e.Log.Error("Session load failed", "error", err)
		}
		return
	}
	c.Session.Load(data)
	c.Session[session.SessionIDKey] = id

	if c.Session.SessionTimeoutExpiredOrMissing() {
		_ = e.Cache.Delete(sessionCacheKeyPrefix + id)
		c.Session = session.NewSession()
	}
}

func (e *SessionCacheEngine) Encode(c *Controller) {
	id := c.Session.ID()
	ts := c.Session.Stamp(e.ExpireAfterDuration)

	// Browser-session cookies still need the data to go away eventually.
	ttl := e.ExpireAfterDuration
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	if err := e.Cache.Set(sessionCacheKeyPrefix+id, c.Session.Serialize(), ttl); err != nil {
		e.Log.Error("Session store failed", "error", err)
		return
	}
	// A rotated id leaves the old data behind.
	if old, ok := e.requestID(c); ok && old != id {
		if err := e.Cache.Delete(sessionCacheKeyPrefix + old); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			e.Log.Warn("Session cleanup failed", "error", err)
		}
	}

	settings := c.Server.Settings
	cookie := &http.Cookie{
		Name:     settings.CookiePrefix + session.SessionCookieSuffix,
		Value:    c.Server.Signer.Sign(id) + "-" + id,
		Domain:   settings.CookieDomain,
		Path:     "/",
		HttpOnly: true,
		Secure:   settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if !ts.IsZero() {
		cookie.Expires = ts.UTC()
		cookie.MaxAge = int(e.ExpireAfterDuration.Seconds())
	}
	c.SetCookie(cookie)
}
