package controllers

import (
	"context"
	"errors"

	"github.com/joindin/joindin"
	"github.com/joindin/joindin/app/models"
	"github.com/joindin/joindin/twitter"
)

const (
	// SessionTwitterTokenSecret holds the request token secret between the
	// two legs of the flow.
	SessionTwitterTokenSecret = "twitter_token_secret"

	requestTokenError = "Twitter has returned an error, have you created an application with twitter and entered the correct callback URL, and the resulting key and secret in the configuration?"
	accessTokenError  = "An error occurred during communication with Twitter, please try again later"
	newTwitterUserMsg = "To receive notifications; please enter your e-mail address.<br />Without a password you can only log in using your twitter account."

	// addUserAttempts bounds retries when a concurrent sign up takes the
	// username first.
	addUserAttempts = 3
)

// TwitterClient is the part of *twitter.Client the controller uses.
type TwitterClient interface {
	GetRequestToken(callbackURL string) (*twitter.RequestToken, string, error)
	GetAccessToken(token, secret, verifier string) (*twitter.AccessToken, error)
	ShowUser(ctx context.Context, access *twitter.AccessToken, screenName string) (*twitter.Profile, error)
}

// Twitter handles sign in with Twitter.
type Twitter struct {
	*Auth
	Client TwitterClient
}

// RequestToken sends the visitor to Twitter to authorize joind.in.
func (t *Twitter) RequestToken(c *joindin.Controller) joindin.Result {
	// Keep the URL to go to after a login.
	c.Flash.Keep(FlashURLAfterLogin)

	token, redirectURL, err := t.Client.GetRequestToken(c.SiteURL("twitter/access_token"))
	if err != nil {
		c.Log.Error("Twitter request token failed", "error", err, "no_secret", errors.Is(err, twitter.ErrNoTokenSecret))
		return c.RenderError(&joindin.Error{Title: "Twitter", Description: requestTokenError})
	}

	if err := c.Session.Set(SessionTwitterTokenSecret, token.Secret); err != nil {
		c.Log.Error("Could not store token secret", "error", err)
		return c.RenderError(&joindin.Error{Title: "Twitter", Description: requestTokenError})
	}
	return c.Redirect("%s", redirectURL)
}

// AccessToken completes the flow when Twitter redirects back, signing in the
// account linked to the screen name or creating one.
func (t *Twitter) AccessToken(c *joindin.Controller) joindin.Result {
	ctx := c.Request.Context()
	fail := func(msg string, kv ...interface{}) joindin.Result {
		c.Log.Error(msg, kv...)
		return c.RenderError(&joindin.Error{Title: "Twitter", Description: accessTokenError})
	}

	secret := c.Session.GetDefault(SessionTwitterTokenSecret, "")
	c.Session.Del(SessionTwitterTokenSecret)
	if secret == "" {
		return fail("No request token secret in session")
	}
	if denied := c.Params.Get("denied"); denied != "" {
		return fail("Twitter authorization denied", "token", denied)
	}

	access, err := t.Client.GetAccessToken(c.Params.Get("oauth_token"), secret, c.Params.Get("oauth_verifier"))
	if err != nil {
		return fail("Twitter access token failed", "error", err)
	}

	u, err := t.Users.GetUserByTwitter(ctx, access.ScreenName)
	switch {
	case err == nil:
		return t.login(c, u)
	case !errors.Is(err, models.ErrNotFound):
		return fail("User lookup failed", "screen_name", access.ScreenName, "error", err)
	}

	fullName := ""
	if profile, err := t.Client.ShowUser(ctx, access, access.ScreenName); err != nil {
		c.Log.Warn("Twitter profile lookup failed", "screen_name", access.ScreenName, "error", err)
	} else {
		fullName = profile.Name
	}

	if u, err = t.createUser(ctx, access.ScreenName, fullName); err != nil {
		return fail("Could not create user", "screen_name", access.ScreenName, "error", err)
	}
	setUserSession(c, u)
	c.Log.Info("Created user from Twitter", "user", u.ID, "username", u.Username, "screen_name", access.ScreenName)

	// Do we have a URL to go to afterwards?
	if dest := urlAfterLogin(c); dest != "" {
		return c.Redirect("%s", dest)
	}

	c.Flash.Out["msg"] = newTwitterUserMsg
	return c.Redirect("/user/manage")
}

func (t *Twitter) createUser(ctx context.Context, screenName, fullName string) (*models.User, error) {
	var err error
	for i := 0; i < addUserAttempts; i++ {
		var username string
		if username, err = models.FindAvailableUsername(ctx, t.Users, screenName); err != nil {
			return nil, err
		}
		var u *models.User
		if u, err = t.addUser(ctx, username, "", "", fullName, screenName); err == nil {
			return u, nil
		}
		if !errors.Is(err, models.ErrUsernameTaken) {
			return nil, err
		}
	}
	return nil, err
}
