package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joindin/joindin"
	"github.com/joindin/joindin/app/models"
	"github.com/joindin/joindin/app/views"
	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/config"
	jtesting "github.com/joindin/joindin/testing"
	"github.com/joindin/joindin/twitter"
)

// fakeTwitter records calls and returns canned responses.
type fakeTwitter struct {
	requestErr    error
	requestSecret string
	accessToken   *twitter.AccessToken
	accessErr     error
	profile       *twitter.Profile
	profileErr    error

	callbackURL string
	token       string
	secret      string
	verifier    string
	accessCalls int
	showCalls   int
}

func newFakeTwitter() *fakeTwitter {
	return &fakeTwitter{
		requestSecret: "rts",
		accessToken:   &twitter.AccessToken{Token: "at", Secret: "ats", ScreenName: "JaneDoe", UserID: "42"},
		profile:       &twitter.Profile{ID: "42", Name: "Jane Doe", ScreenName: "JaneDoe"},
	}
}

func (f *fakeTwitter) GetRequestToken(callbackURL string) (*twitter.RequestToken, string, error) {
	f.callbackURL = callbackURL
	if f.requestErr != nil {
		return nil, "", f.requestErr
	}
	return &twitter.RequestToken{Token: "rt", Secret: f.requestSecret},
		"https://api.twitter.com/oauth/authorize?oauth_token=rt", nil
}

func (f *fakeTwitter) GetAccessToken(token, secret, verifier string) (*twitter.AccessToken, error) {
	f.accessCalls++
	f.token, f.secret, f.verifier = token, secret, verifier
	if f.accessErr != nil {
		return nil, f.accessErr
	}
	return f.accessToken, nil
}

func (f *fakeTwitter) ShowUser(ctx context.Context, access *twitter.AccessToken, screenName string) (*twitter.Profile, error) {
	f.showCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

type app struct {
	*jtesting.TestSuite
	users   *models.MemoryStore
	twitter *fakeTwitter
	now     time.Time
}

func newApp(t *testing.T) *app {
	return newAppWithSessions(t, "cookie")
}

func newAppWithSessions(t *testing.T, engine string) *app {
	a := &app{
		users:   models.NewMemoryStore(),
		twitter: newFakeTwitter(),
		now:     time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}

	s, err := joindin.NewServer(joindin.Options{
		Settings: &config.Settings{
			AppName:        "joindin",
			Secret:         "0123456789abcdef",
			CookiePrefix:   "JOINDIN",
			SessionEngine:  engine,
			SessionExpires: time.Hour,
		},
		RunMode: "prod",
		Views:   views.FS,
		Cache:   cache.NewInMemoryCache(time.Hour),
	})
	require.NoError(t, err)

	auth := &Auth{Users: a.users, Now: func() time.Time { return a.now }}
	require.NoError(t, Routes(s.Router, auth, a.twitter))

	a.TestSuite = jtesting.NewTestSuite(t, s)
	s.Settings.SiteURL = a.BaseURL()
	return a
}

func (a *app) addUser(t *testing.T, u *models.User) *models.User {
	require.NoError(t, a.users.AddUser(context.Background(), u))
	return u
}
