package twitter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mrjones/oauth"

	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/config"
	"github.com/joindin/joindin/logger"
)

type (
	// RequestToken is the temporary credential of the first leg.
	RequestToken = oauth.RequestToken

	// AccessToken is the credential of a signed in Twitter user.
	AccessToken struct {
		Token  string
		Secret string
		// ScreenName and UserID identify the user who authorized the token.
		ScreenName string
		UserID     string
	}

	// Client talks to Twitter on behalf of the configured consumer.
	Client struct {
		consumer       *oauth.Consumer
		usersShowURL   string
		timeout        time.Duration
		cache          cache.Cache
		profileExpires time.Duration
		log            logger.MultiLogger
	}
)

// NewClient returns a client for the consumer in s. Profiles are cached in c
// when it is not nil.
func NewClient(s config.TwitterSettings, c cache.Cache, log logger.MultiLogger) *Client {
	if log == nil {
		log = logger.New("section", "twitter")
	}
	httpClient := &http.Client{Timeout: s.Timeout}
	consumer := oauth.NewCustomHttpClientConsumer(
		s.ConsumerKey,
		s.ConsumerSecret,
		oauth.ServiceProvider{
			RequestTokenUrl:   s.RequestTokenURL,
			AuthorizeTokenUrl: s.AuthorizeURL,
			AccessTokenUrl:    s.AccessTokenURL,
			HttpMethod:        http.MethodPost,
		},
		httpClient,
	)
	return &Client{
		consumer:       consumer,
		usersShowURL:   s.UsersShowURL,
		timeout:        s.Timeout,
		cache:          c,
		profileExpires: s.ProfileExpires,
		log:            log,
	}
}

// GetRequestToken starts the flow. Twitter redirects the visitor to
// callbackURL after they authorize; redirectURL is Twitter's authorize page.
func (c *Client) GetRequestToken(callbackURL string) (token *RequestToken, redirectURL string, err error) {
	token, redirectURL, err = c.consumer.GetRequestTokenAndUrl(callbackURL)
	if err != nil {
		return nil, "", fmt.Errorf("twitter: request token: %w", err)
	}
	if token == nil || token.Secret == "" {
		return nil, "", ErrNoTokenSecret
	}
	c.log.Debug("Obtained request token", "token", token.Token)
	return token, redirectURL, nil
}

// GetAccessToken exchanges the request token and the verifier Twitter handed
// back for an access token.
func (c *Client) GetAccessToken(token, secret, verifier string) (*AccessToken, error) {
	atoken, err := c.consumer.AuthorizeToken(&oauth.RequestToken{Token: token, Secret: secret}, verifier)
	if err != nil {
		return nil, fmt.Errorf("twitter: access token: %w", err)
	}

	access := &AccessToken{
		Token:      atoken.Token,
		Secret:     atoken.Secret,
		ScreenName: atoken.AdditionalData["screen_name"],
		UserID:     atoken.AdditionalData["user_id"],
	}
	if access.ScreenName == "" {
		return nil, ErrNoScreenName
	}
	c.log.Debug("Obtained access token", "screen_name", access.ScreenName, "user_id", access.UserID)
	return access, nil
}

func (c *Client) httpClient(access *AccessToken) (*http.Client, error) {
	client, err := c.consumer.MakeHttpClient(&oauth.AccessToken{Token: access.Token, Secret: access.Secret})
	if err != nil {
		return nil, err
	}
	client.Timeout = c.timeout
	return client, nil
}
