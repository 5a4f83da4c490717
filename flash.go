package joindin

import (
	"fmt"
	"net/http"
	"net/url"
)

// Flash represents a cookie that gets overwritten on each request.
// It allows data to be stored across one page at a time.
// This is commonly used to implement success or error messages.
// e.g. the Post/Redirect/Get pattern: http://en.wikipedia.org/wiki/Post/Redirect/Get
type Flash struct {
	// Data is the message data from a previous request.
	// Out is the message data for the next request.
	Data, Out map[string]string
}

// NewFlash returns an empty flash.
func NewFlash() Flash {
	return Flash{
		Data: make(map[string]string),
		Out:  make(map[string]string),
	}
}

// Error serializes the given msg and args to an "error" key within
// the Flash cookie.
func (f Flash) Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		f.Out["error"] = msg
	} else {
		f.Out["error"] = fmt.Sprintf(msg, args...)
	}
}

// Success serializes the given msg and args to a "success" key within
// the Flash cookie.
func (f Flash) Success(msg string, args ...interface{}) {
	if len(args) == 0 {
		f.Out["success"] = msg
	} else {
		f.Out["success"] = fmt.Sprintf(msg, args...)
	}
}

// Keep carries an incoming value over to the next request.
func (f Flash) Keep(key string) {
	if value, ok := f.Data[key]; ok {
		f.Out[key] = value
	}
}

// FlashFilter is a Filter that retrieves and sets the flash cookie.
// Within the app, it is available as a Flash attribute on Controller instances.
// The name of the Flash cookie is set as CookiePrefix + "_FLASH".
func FlashFilter(c *Controller, fc []Filter) {
	c.Flash = restoreFlash(c.Request, c.Server.Settings.CookiePrefix)
	c.ViewArgs["flash"] = c.Flash.Data

	fc[0](c, fc[1:])

	// Store the flash.
	if len(c.Flash.Out) == 0 && len(c.Flash.Data) == 0 {
		return
	}
	var flashValue string
	for key, value := range c.Flash.Out {
		flashValue += "\x00" + key + ":" + value + "\x00"
	}
	cookie := &http.Cookie{
		Name:     c.Server.Settings.CookiePrefix + "_FLASH",
		Value:    url.QueryEscape(flashValue),
		HttpOnly: true,
		Secure:   c.Server.Settings.CookieSecure,
		Domain:   c.Server.Settings.CookieDomain,
		Path:     "/",
	}
	if flashValue == "" {
		cookie.MaxAge = -1
	}
	c.SetCookie(cookie)
}

// Restore flash from a request.
func restoreFlash(req *http.Request, cookiePrefix string) Flash {
	flash := NewFlash()
	if cookie, err := req.Cookie(cookiePrefix + "_FLASH"); err == nil {
		ParseKeyValueCookie(cookie.Value, func(key, val string) {
			flash.Data[key] = val
		})
	}
	return flash
}
