// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package testing

import (
	"bytes"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	gotesting "testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/publicsuffix"

	"github.com/joindin/joindin"
	"github.com/joindin/joindin/session"
)

// TestSuite drives a server over real HTTP. Cookies persist between requests
// and redirects are not followed, so tests can assert on them.
type TestSuite struct {
	T            gotesting.TB
	Server       *joindin.Server
	HTTPServer   *httptest.Server
	Client       *http.Client
	Response     *http.Response
	ResponseBody []byte
}

type TestRequest struct {
	*http.Request
	testSuite *TestSuite
}

// NewTestSuite starts s on a local listener, stopped when the test ends.
func NewTestSuite(t gotesting.TB, s *joindin.Server) *TestSuite {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	require.NoError(t, err)

	ts := &TestSuite{
		T:          t,
		Server:     s,
		HTTPServer: httptest.NewServer(s),
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	t.Cleanup(ts.HTTPServer.Close)
	return ts
}

// NewTestRequest returns an initialized *TestRequest.
func (t *TestSuite) NewTestRequest(req *http.Request) *TestRequest {
	return &TestRequest{
		Request:   req,
		testSuite: t,
	}
}

// BaseURL returns the base http URL of the server, e.g. "http://127.0.0.1:8557".
func (t *TestSuite) BaseURL() string {
	return t.HTTPServer.URL
}

// Get issues a GET request to the given path and stores the result in Response
// and ResponseBody.
func (t *TestSuite) Get(path string) {
	t.GetCustom(t.BaseURL() + path).Send()
}

// GetCustom returns a GET request to the given URI in a form of its wrapper.
func (t *TestSuite) GetCustom(uri string) *TestRequest {
	req, err := http.NewRequest(http.MethodGet, uri, nil)
	require.NoError(t.T, err)
	return t.NewTestRequest(req)
}

// FollowRedirect issues a GET to the Location of the last response, which must
// be a redirect to this server.
func (t *TestSuite) FollowRedirect() {
	location := t.Response.Header.Get("Location")
	require.NotEmpty(t.T, location, "response has no Location")
	u, err := url.Parse(location)
	require.NoError(t.T, err)
	t.Get(u.RequestURI())
}

// Send issues the request and reads the response into Response and
// ResponseBody.
func (r *TestRequest) Send() {
	t := r.testSuite
	resp, err := t.Client.Do(r.Request)
	require.NoError(t.T, err)
	defer resp.Body.Close()

	t.Response = resp
	t.ResponseBody, err = io.ReadAll(resp.Body)
	require.NoError(t.T, err)
}

// Cookie returns the cookie the client holds for name, or nil.
func (t *TestSuite) Cookie(name string) *http.Cookie {
	u, _ := url.Parse(t.BaseURL())
	for _, c := range t.Client.Jar.Cookies(u) {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Session decodes the session the client currently holds.
func (t *TestSuite) Session() session.Session {
	req := httptest.NewRequest(http.MethodGet, t.BaseURL()+"/", nil)
	u, _ := url.Parse(t.BaseURL())
	for _, c := range t.Client.Jar.Cookies(u) {
		req.AddCookie(c)
	}
	c := joindin.NewController(t.Server, httptest.NewRecorder(), req)
	t.Server.Sessions.Decode(c)
	return c.Session
}

func (t *TestSuite) AssertOk() {
	t.AssertStatus(http.StatusOK)
}

func (t *TestSuite) AssertNotFound() {
	t.AssertStatus(http.StatusNotFound)
}

func (t *TestSuite) AssertStatus(status int) {
	t.T.Helper()
	require.Equal(t.T, status, t.Response.StatusCode, "Status of %s", t.Response.Request.URL)
}

// AssertRedirect asserts a 302 whose Location is location; a location
// starting with "/" is resolved against the server.
func (t *TestSuite) AssertRedirect(location string) {
	t.T.Helper()
	t.AssertStatus(http.StatusFound)
	if len(location) > 0 && location[0] == '/' {
		location = t.BaseURL() + location
	}
	require.Equal(t.T, location, t.Response.Header.Get("Location"))
}

func (t *TestSuite) AssertContentType(contentType string) {
	t.AssertHeader("Content-Type", contentType)
}

func (t *TestSuite) AssertHeader(name, value string) {
	t.T.Helper()
	require.Equal(t.T, value, t.Response.Header.Get(name), "Header %s", name)
}

// AssertContains asserts that the response contains the given string.
func (t *TestSuite) AssertContains(s string) {
	t.T.Helper()
	require.True(t.T, bytes.Contains(t.ResponseBody, []byte(s)),
		"Expected response to contain %q, got:\n%s", s, t.ResponseBody)
}

// AssertNotContains asserts that the response does not contain the given string.
func (t *TestSuite) AssertNotContains(s string) {
	t.T.Helper()
	require.False(t.T, bytes.Contains(t.ResponseBody, []byte(s)),
		"Expected response not to contain %q, got:\n%s", s, t.ResponseBody)
}

// AssertContainsRegex asserts that the response matches the given regular expression.
func (t *TestSuite) AssertContainsRegex(regex string) {
	t.T.Helper()
	require.Regexp(t.T, regexp.MustCompile(regex), string(t.ResponseBody))
}
