package config

import (
	"errors"
	"strings"
	"time"
)

// Twitter endpoints used when app.conf does not override them.
const (
	DefaultRequestTokenURL = "https://api.twitter.com/oauth/request_token"
	DefaultAuthorizeURL    = "https://api.twitter.com/oauth/authorize"
	DefaultAccessTokenURL  = "https://api.twitter.com/oauth/access_token"
	DefaultUsersShowURL    = "https://api.twitter.com/1.1/users/show.json"
)

// ErrMissingSecret is returned when app.secret is unset; session cookies
// cannot be signed without it.
var ErrMissingSecret = errors.New("config: app.secret is required")

// Settings is the typed view of the options the application reads at startup.
type Settings struct {
	AppName  string
	Secret   string
	SiteURL  string
	HTTPAddr string

	CookiePrefix string
	CookieDomain string
	CookieSecure bool

	SessionEngine  string
	SessionExpires time.Duration

	DBDriver string
	DBPath   string

	Twitter TwitterSettings
}

// TwitterSettings holds the OAuth consumer credentials and endpoints.
type TwitterSettings struct {
	ConsumerKey     string
	ConsumerSecret  string
	RequestTokenURL string
	AuthorizeURL    string
	AccessTokenURL  string
	UsersShowURL    string
	ProfileExpires  time.Duration
	Timeout         time.Duration
}

// NewSettings reads Settings from c.
func NewSettings(c *Context) (*Settings, error) {
	s := &Settings{
		AppName:       c.StringDefault("app.name", "joindin"),
		Secret:        c.StringDefault("app.secret", ""),
		SiteURL:       strings.TrimRight(c.StringDefault("site_url", "http://localhost:9000"), "/"),
		HTTPAddr:      c.StringDefault("http.addr", ":9000"),
		CookieDomain:  c.StringDefault("cookie.domain", ""),
		CookieSecure:  c.BoolDefault("cookie.secure", false),
		SessionEngine: c.StringDefault("session.engine", "cookie"),
		DBDriver:      c.StringDefault("db.driver", "sqlite"),
		DBPath:        c.StringDefault("db.path", "joindin.db"),
		Twitter: TwitterSettings{
			ConsumerKey:     c.StringDefault("twitter_consumer_key", ""),
			ConsumerSecret:  c.StringDefault("twitter_consumer_secret", ""),
			RequestTokenURL: c.StringDefault("twitter.request_token_url", DefaultRequestTokenURL),
			AuthorizeURL:    c.StringDefault("twitter.authorize_url", DefaultAuthorizeURL),
			AccessTokenURL:  c.StringDefault("twitter.access_token_url", DefaultAccessTokenURL),
			UsersShowURL:    c.StringDefault("twitter.users_show_url", DefaultUsersShowURL),
		},
	}
	s.CookiePrefix = c.StringDefault("cookie.prefix", strings.ToUpper(s.AppName))
	if s.Secret == "" {
		return nil, ErrMissingSecret
	}

	var err error
	if s.SessionExpires, err = Duration(c, "session.expires", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if s.Twitter.ProfileExpires, err = Duration(c, "twitter.profile.expires", time.Hour); err != nil {
		return nil, err
	}
	if s.Twitter.Timeout, err = Duration(c, "twitter.timeout", 10*time.Second); err != nil {
		return nil, err
	}
	return s, nil
}
