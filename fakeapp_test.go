package joindin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/config"
)

var testViews = fstest.MapFS{
	"header.html":        {Data: []byte(`<html><body>{{with .flash.error}}<p class="error">{{.}}</p>{{end}}`)},
	"footer.html":        {Data: []byte(`</body></html>`)},
	"hotels/show.html":   {Data: []byte(`{{template "header.html" .}}<h1>{{.name}}</h1><a href="{{url "Hotels.Show" "id" "7"}}">again</a>{{template "footer.html" .}}`)},
	"hotels/broken.html": {Data: []byte(`{{.name.missing.deeper}}`)},
	"errors/404.html":    {Data: []byte(`<h1>{{.Error.Title}}</h1><p>{{.Error.Description}}</p>`)},
	"errors/500.html":    {Data: []byte(`<h1>{{.Error.Title}}</h1><p>{{.Error.Description}}</p>{{if .DevMode}}<pre>{{.Error.Stack}}</pre>{{end}}`)},
	"static/ignored.txt": {Data: []byte(`not a template`)},
}

func testSettings() *config.Settings {
	return &config.Settings{
		AppName:        "joindin",
		Secret:         "0123456789abcdef",
		SiteURL:        "http://joind.in.test",
		HTTPAddr:       ":0",
		CookiePrefix:   "JOINDIN",
		SessionEngine:  "cookie",
		SessionExpires: time.Hour,
	}
}

func newTestServer(t *testing.T, engine string) *Server {
	t.Helper()
	settings := testSettings()
	settings.SessionEngine = engine
	s, err := NewServer(Options{
		Settings: settings,
		RunMode:  "dev",
		Views:    testViews,
		Cache:    cache.NewInMemoryCache(time.Hour),
	})
	require.NoError(t, err)
	return s
}

// do runs a request through s, copying cookies from a previous response.
func do(s *Server, method, target string, prev *http.Response) *http.Response {
	req := httptest.NewRequest(method, target, nil)
	if prev != nil {
		for _, cookie := range prev.Cookies() {
			if cookie.MaxAge >= 0 {
				req.AddCookie(cookie)
			}
		}
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w.Result()
}
