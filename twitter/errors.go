package twitter

import "errors"

var (
	// ErrNoTokenSecret is returned when Twitter's request token response
	// carries no oauth_token_secret, typically because the consumer key or
	// the callback URL is wrong.
	ErrNoTokenSecret = errors.New("twitter: request token has no secret")
	// ErrNoScreenName is returned when the access token response does not
	// identify the user.
	ErrNoScreenName = errors.New("twitter: access token has no screen_name")
	// ErrUserNotFound is returned by ShowUser for a 404.
	ErrUserNotFound = errors.New("twitter: user not found")
)
