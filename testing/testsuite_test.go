package testing

import (
	"net/http"
	gotesting "testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joindin/joindin"
	"github.com/joindin/joindin/config"
)

func newServer(t gotesting.TB) *joindin.Server {
	s, err := joindin.NewServer(joindin.Options{
		Settings: &config.Settings{
			AppName:        "joindin",
			Secret:         "secret",
			SiteURL:        "http://joind.in.test",
			CookiePrefix:   "JOINDIN",
			SessionEngine:  "cookie",
			SessionExpires: time.Hour,
		},
		Views: fstest.MapFS{
			"index.html":      {Data: []byte(`<p>Hello {{.session.name}}</p>`)},
			"errors/404.html": {Data: []byte(`missing {{.Error.Description}}`)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, s.Router.Get("/", "App.Index", func(c *joindin.Controller) joindin.Result {
		return c.RenderTemplate("index.html")
	}))
	require.NoError(t, s.Router.Get("/login/:name", "App.Login", func(c *joindin.Controller) joindin.Result {
		_ = c.Session.Set("name", c.Params.Get("name"))
		return c.Redirect("/")
	}))
	return s
}

func TestSuiteKeepsCookiesAndStopsAtRedirects(t *gotesting.T) {
	s := newServer(t)
	suite := NewTestSuite(t, s)
	s.Settings.SiteURL = suite.BaseURL()

	suite.Get("/")
	suite.AssertOk()
	suite.AssertContentType("text/html; charset=utf-8")
	suite.AssertNotContains("jane")

	suite.Get("/login/jane")
	suite.AssertRedirect("/")
	require.NotNil(t, suite.Cookie("JOINDIN_SESSION"))
	assert.Equal(t, "jane", suite.Session()["name"])

	suite.FollowRedirect()
	suite.AssertOk()
	suite.AssertContains("<p>Hello jane</p>")
	suite.AssertContainsRegex(`Hello \w+`)
}

func TestSuiteCustomRequest(t *gotesting.T) {
	suite := NewTestSuite(t, newServer(t))

	req := suite.GetCustom(suite.BaseURL() + "/nowhere")
	req.Header.Set("Accept", "text/html")
	req.Send()
	suite.AssertNotFound()
	suite.AssertContains("missing No matching route found: /nowhere")
	suite.AssertStatus(http.StatusNotFound)
	assert.Nil(t, suite.Cookie("JOINDIN_FLASH"))
}
