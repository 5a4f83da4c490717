package controllers

import (
	"github.com/joindin/joindin"
)

// User serves the account pages.
type User struct {
	*Auth
}

// Login shows the sign in page. A dest parameter is remembered for after the
// sign in completes.
func (u *User) Login(c *joindin.Controller) joindin.Result {
	if dest := c.Params.Get("dest"); dest != "" {
		if isLocalURL(c, dest) {
			c.Flash.Out[FlashURLAfterLogin] = dest
		} else {
			c.Log.Warn("Ignoring off-site dest", "url", dest)
		}
	} else {
		c.Flash.Keep(FlashURLAfterLogin)
	}

	if user := u.connected(c); user != nil {
		return c.Redirect("/user/main")
	}
	return c.RenderTemplate("user/login.html")
}

// Main is the signed in landing page.
func (u *User) Main(c *joindin.Controller) joindin.Result {
	user := u.connected(c)
	if user == nil {
		return c.Redirect("/user/login")
	}
	return c.RenderTemplate("user/main.html", "user", user)
}

// Manage is the account settings page.
func (u *User) Manage(c *joindin.Controller) joindin.Result {
	user := u.connected(c)
	if user == nil {
		return c.Redirect("/user/login")
	}
	return c.RenderTemplate("user/manage.html", "user", user)
}

// Logout clears the session.
func (u *User) Logout(c *joindin.Controller) joindin.Result {
	c.Session.Clear()
	c.Flash.Success("You have been logged out")
	return c.Redirect("/user/login")
}
