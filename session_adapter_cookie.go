package joindin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/joindin/joindin/config"
	"github.com/joindin/joindin/logger"
	"github.com/joindin/joindin/session"
)

// SessionCookieEngine keeps the whole session in a signed cookie.
type SessionCookieEngine struct {
	SessionEngineOptions
}

func newCookieEngine(o SessionEngineOptions) (SessionEngine, error) {
	return &SessionCookieEngine{o}, nil
}

// NewSessionCookieEngine is the engine used by tests.
func NewSessionCookieEngine(o SessionEngineOptions) *SessionCookieEngine {
	if o.Log == nil {
		o.Log = logger.New("section", "session-engine")
	}
	return &SessionCookieEngine{o}
}

// Decode the session information from the cookie retrieved from the controller request
func (cse *SessionCookieEngine) Decode(c *Controller) {
	c.Session = session.NewSession()
	cookie, err := c.Request.Cookie(c.Server.Settings.CookiePrefix + session.SessionCookieSuffix)
	if err != nil {
		return
	}
	cse.DecodeCookie(cookie, c.Server.Signer, c.Session)
}

// Encode the session information to the cookie, set the cookie on the controller
func (cse *SessionCookieEngine) Encode(c *Controller) {
	c.SetCookie(cse.GetCookie(c.Session, c.Server.Signer, c.Server.Settings))
}

// DecodeCookie verifies and unpacks cookie into s. An expired or tampered
// cookie leaves s empty.
func (cse *SessionCookieEngine) DecodeCookie(cookie *http.Cookie, signer Signer, s session.Session) {
	// Separate the data from the signature.
	cookieValue := cookie.Value
	hyphen := strings.Index(cookieValue, "-")
	if hyphen == -1 || hyphen >= len(cookieValue)-1 {
		return
	}
	sig, data := cookieValue[:hyphen], cookieValue[hyphen+1:]

	// Verify the signature.
	if !signer.Verify(data, sig) {
		cse.Log.Warn("Session cookie signature failed")
		return
	}

	tempMap := map[string]string{}
	ParseKeyValueCookie(data, func(key, val string) {
		tempMap[key] = val
	})
	s.Load(tempMap)

	// Check timeout after unpacking values - if timeout missing (or removed) destroy all session
	// objects
	if s.SessionTimeoutExpiredOrMissing() {
		for key := range s {
			delete(s, key)
		}
	}
}

// GetCookie converts the session to its cookie.
func (cse *SessionCookieEngine) GetCookie(s session.Session, signer Signer, settings *config.Settings) *http.Cookie {
	ts := s.Stamp(cse.ExpireAfterDuration)

	var sessionValue string
	for key, value := range s.Serialize() {
		sessionValue += "\x00" + key + ":" + value + "\x00"
	}

	if len(sessionValue) > 1024*4 {
		cse.Log.Error("SessionCookieEngine.Cookie, session data has exceeded 4k limit, cookie data will not be reliable", "length", len(sessionValue))
	}

	sessionData := url.QueryEscape(sessionValue)
	sessionCookie := &http.Cookie{
		Name:     settings.CookiePrefix + session.SessionCookieSuffix,
		Value:    signer.Sign(sessionData) + "-" + sessionData,
		Domain:   settings.CookieDomain,
		Path:     "/",
		HttpOnly: true,
		Secure:   settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if !ts.IsZero() {
		sessionCookie.Expires = ts.UTC()
		sessionCookie.MaxAge = int(cse.ExpireAfterDuration.Seconds())
	}
	return sessionCookie
}
