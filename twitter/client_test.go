package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/config"
)

// fakeTwitter serves the three OAuth endpoints and users/show.json.
type fakeTwitter struct {
	*httptest.Server
	requestTokenBody string
	accessTokenBody  string
	showCalls        int32
	lastAuth         atomic.Value
}

func newFakeTwitter(t *testing.T) *fakeTwitter {
	f := &fakeTwitter{
		requestTokenBody: "oauth_token=rt&oauth_token_secret=rts&oauth_callback_confirmed=true",
		accessTokenBody:  "oauth_token=at&oauth_token_secret=ats&user_id=42&screen_name=JaneDoe",
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/request_token", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth.Store(r.Header.Get("Authorization"))
		fmt.Fprint(w, f.requestTokenBody)
	})
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth.Store(r.Header.Get("Authorization"))
		fmt.Fprint(w, f.accessTokenBody)
	})
	mux.HandleFunc("/1.1/users/show.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.showCalls, 1)
		f.lastAuth.Store(r.Header.Get("Authorization"))
		switch r.URL.Query().Get("screen_name") {
		case "JaneDoe":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id_str":"42","name":"Jane Doe","screen_name":"JaneDoe","followers_count":7}`)
		case "broken":
			http.Error(w, `{"errors":[{"code":131}]}`, http.StatusInternalServerError)
		default:
			http.Error(w, `{"errors":[{"code":50}]}`, http.StatusNotFound)
		}
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeTwitter) settings() config.TwitterSettings {
	return config.TwitterSettings{
		ConsumerKey:     "key",
		ConsumerSecret:  "secret",
		RequestTokenURL: f.URL + "/oauth/request_token",
		AuthorizeURL:    f.URL + "/oauth/authorize",
		AccessTokenURL:  f.URL + "/oauth/access_token",
		UsersShowURL:    f.URL + "/1.1/users/show.json",
		ProfileExpires:  time.Hour,
		Timeout:         5 * time.Second,
	}
}

func (f *fakeTwitter) auth() string {
	s, _ := f.lastAuth.Load().(string)
	return s
}

func TestGetRequestToken(t *testing.T) {
	f := newFakeTwitter(t)
	c := NewClient(f.settings(), nil, nil)

	token, redirectURL, err := c.GetRequestToken("http://joind.in/twitter/access_token")
	require.NoError(t, err)
	assert.Equal(t, "rt", token.Token)
	assert.Equal(t, "rts", token.Secret)
	assert.True(t, strings.HasPrefix(redirectURL, f.URL+"/oauth/authorize?"), redirectURL)
	assert.Contains(t, redirectURL, "oauth_token=rt")
	assert.Contains(t, f.auth(), "oauth_callback")
	assert.Contains(t, f.auth(), `oauth_consumer_key="key"`)
}

func TestGetRequestTokenWithoutSecret(t *testing.T) {
	f := newFakeTwitter(t)
	f.requestTokenBody = "oauth_token=rt&oauth_callback_confirmed=true"
	c := NewClient(f.settings(), nil, nil)

	_, _, err := c.GetRequestToken("http://joind.in/twitter/access_token")
	assert.Error(t, err)
}

func TestGetRequestTokenUnreachable(t *testing.T) {
	f := newFakeTwitter(t)
	s := f.settings()
	f.Close()

	_, _, err := NewClient(s, nil, nil).GetRequestToken("http://joind.in/twitter/access_token")
	assert.Error(t, err)
}

func TestGetAccessToken(t *testing.T) {
	f := newFakeTwitter(t)
	c := NewClient(f.settings(), nil, nil)

	access, err := c.GetAccessToken("rt", "rts", "verifier")
	require.NoError(t, err)
	assert.Equal(t, &AccessToken{Token: "at", Secret: "ats", ScreenName: "JaneDoe", UserID: "42"}, access)
	assert.Contains(t, f.auth(), "oauth_verifier")
	assert.Contains(t, f.auth(), `oauth_token="rt"`)
}

func TestGetAccessTokenWithoutScreenName(t *testing.T) {
	f := newFakeTwitter(t)
	f.accessTokenBody = "oauth_token=at&oauth_token_secret=ats&user_id=42"
	c := NewClient(f.settings(), nil, nil)

	_, err := c.GetAccessToken("rt", "rts", "verifier")
	assert.ErrorIs(t, err, ErrNoScreenName)
}

func TestShowUser(t *testing.T) {
	f := newFakeTwitter(t)
	c := NewClient(f.settings(), cache.NewInMemoryCache(time.Hour), nil)
	access := &AccessToken{Token: "at", Secret: "ats", ScreenName: "JaneDoe"}

	profile, err := c.ShowUser(context.Background(), access, "JaneDoe")
	require.NoError(t, err)
	assert.Equal(t, &Profile{ID: "42", Name: "Jane Doe", ScreenName: "JaneDoe"}, profile)
	assert.Contains(t, f.auth(), `oauth_token="at"`)

	// The second lookup is served from the cache, whatever the case.
	profile, err = c.ShowUser(context.Background(), access, "janedoe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.showCalls))
}

func TestShowUserErrors(t *testing.T) {
	f := newFakeTwitter(t)
	c := NewClient(f.settings(), nil, nil)
	access := &AccessToken{Token: "at", Secret: "ats"}

	_, err := c.ShowUser(context.Background(), access, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.ShowUser(context.Background(), access, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ShowUser(ctx, access, "JaneDoe")
	assert.ErrorIs(t, err, context.Canceled)
}
