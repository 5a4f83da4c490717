// Package controllers holds the joind.in actions: the Twitter sign in flow
// and the account pages it lands on.
package controllers

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joindin/joindin"
	"github.com/joindin/joindin/app/models"
	"github.com/joindin/joindin/session"
)

// Session keys describing the signed in user.
const (
	SessionUserID          = "ID"
	SessionUsername        = "username"
	SessionFullName        = "full_name"
	SessionTwitterUsername = "twitter_username"
	SessionAdmin           = "admin"
)

// FlashURLAfterLogin holds where to send the user once signed in.
const FlashURLAfterLogin = "url_after_login"

// Auth holds what every controller that signs users in needs.
type Auth struct {
	Users models.UserStore
	Now   func() time.Time
}

func (a *Auth) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// login signs u in and sends them on to url_after_login or their main page.
func (a *Auth) login(c *joindin.Controller, u *models.User) joindin.Result {
	at := a.now()
	if err := a.Users.UpdateLastLogin(c.Request.Context(), u.ID, at); err != nil {
		c.Log.Warn("Could not record last login", "user", u.ID, "error", err)
	} else {
		u.LastLogin = at
	}
	setUserSession(c, u)
	c.Log.Info("User logged in", "user", u.ID, "username", u.Username)

	if dest := urlAfterLogin(c); dest != "" {
		return c.Redirect("%s", dest)
	}
	return c.Redirect("/user/main")
}

// addUser creates an active account.
func (a *Auth) addUser(ctx context.Context, username, password, email, fullName, twitterUsername string) (*models.User, error) {
	now := a.now().UTC()
	u := &models.User{
		Username:        username,
		Password:        password,
		Email:           email,
		FullName:        fullName,
		TwitterUsername: twitterUsername,
		Active:          true,
		Created:         now,
		LastLogin:       now,
	}
	if err := a.Users.AddUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// connected returns the signed in user, or nil. A session naming a user that
// no longer exists is cleared.
func (a *Auth) connected(c *joindin.Controller) *models.User {
	raw, err := c.Session.Get(SessionUserID)
	if err != nil {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.Session.Clear()
		return nil
	}

	u, err := a.Users.GetUser(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			c.Log.Error("Could not load session user", "user", id, "error", err)
		}
		c.Session.Clear()
		return nil
	}
	return u
}

// setUserSession writes u into the session under a fresh session id.
func setUserSession(c *joindin.Controller, u *models.User) {
	c.Session.Del(session.SessionIDKey)
	admin := ""
	if u.Admin {
		admin = "1"
	}
	for key, value := range map[string]string{
		SessionUserID:          u.IDString(),
		SessionUsername:        u.Username,
		SessionFullName:        u.FullName,
		SessionTwitterUsername: u.TwitterUsername,
		SessionAdmin:           admin,
	} {
		if err := c.Session.Set(key, value); err != nil {
			c.Log.Warn("Could not store session value", "key", key, "error", err)
		}
	}
}

// urlAfterLogin returns the flashed destination if it stays on this site.
func urlAfterLogin(c *joindin.Controller) string {
	dest := c.Flash.Data[FlashURLAfterLogin]
	if dest == "" {
		return ""
	}
	if !isLocalURL(c, dest) {
		c.Log.Warn("Ignoring off-site url_after_login", "url", dest)
		return ""
	}
	return dest
}

func isLocalURL(c *joindin.Controller, dest string) bool {
	if strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//") && !strings.HasPrefix(dest, "/\\") {
		return true
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	site, err := url.Parse(c.Server.Settings.SiteURL)
	return err == nil && u.Scheme == site.Scheme && strings.EqualFold(u.Host, site.Host)
}
