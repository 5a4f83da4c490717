package joindin

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/joindin/joindin/logger"
	"github.com/joindin/joindin/session"
)

// Controller is the context for a single request.
type Controller struct {
	Server   *Server
	Request  *http.Request
	Response *Response

	Action   string // The fully qualified action name, e.g. Twitter.RequestToken
	Params   *Params
	Session  session.Session
	Flash    Flash
	ViewArgs map[string]interface{}
	Log      logger.MultiLogger

	Result Result

	route *Route
}

// NewController returns new controller instance for Request and Response
func NewController(s *Server, w http.ResponseWriter, r *http.Request) *Controller {
	return &Controller{
		Server:   s,
		Request:  r,
		Response: NewResponse(w),
		Params:   &Params{},
		Session:  session.NewSession(),
		Flash:    NewFlash(),
		ViewArgs: map[string]interface{}{"RunMode": s.RunMode, "DevMode": s.DevMode()},
		Log:      s.Log.New("module", "app"),
	}
}

// SetCookie adds a Set-Cookie header to the response.
func (c *Controller) SetCookie(cookie *http.Cookie) {
	http.SetCookie(c.Response.Out, cookie)
}

// SiteURL returns the absolute URL for path.
func (c *Controller) SiteURL(path string) string {
	return c.Server.SiteURL(path)
}

// RenderTemplate renders the named template with c.ViewArgs. Extra args are
// key value pairs added to the view args first.
func (c *Controller) RenderTemplate(name string, args ...interface{}) Result {
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			c.ViewArgs[key] = args[i+1]
		}
	}

	tmpl, err := c.Server.Templates.Template(name)
	if err != nil {
		return c.RenderError(err)
	}
	return &RenderTemplateResult{
		Template: tmpl,
		ViewArgs: c.ViewArgs,
		Errors:   c.Server.Templates,
	}
}

// RenderText renders the given text, formatting it with args if present.
func (c *Controller) RenderText(text string, objs ...interface{}) Result {
	finalText := text
	if len(objs) > 0 {
		finalText = fmt.Sprintf(text, objs...)
	}
	return &RenderTextResult{finalText}
}

// RenderError renders err on the error page for the response status, 500 when
// none was set.
func (c *Controller) RenderError(err error) Result {
	c.setStatusIfNil(http.StatusInternalServerError)
	return ErrorResult{ViewArgs: c.ViewArgs, Templates: c.Server.Templates, error: err}
}

// NotFound returns an HTTP 404 Not Found response whose body is the
// formatted string of msg and objs.
func (c *Controller) NotFound(msg string, objs ...interface{}) Result {
	finalText := fmt.Sprintf(msg, objs...)
	c.Response.Status = http.StatusNotFound
	return c.RenderError(&Error{
		Title:       "Not Found",
		Description: finalText,
	})
}

// Redirect to a path under the site or an absolute URL. A path is formatted
// with args if present.
func (c *Controller) Redirect(location string, args ...interface{}) Result {
	if len(args) > 0 {
		location = fmt.Sprintf(location, args...)
	}
	if strings.HasPrefix(location, "/") && !strings.HasPrefix(location, "//") {
		location = c.SiteURL(location)
	}
	return &RedirectToURLResult{location}
}

func (c *Controller) setStatusIfNil(status int) {
	if c.Response.Status == 0 {
		c.Response.Status = status
	}
}
