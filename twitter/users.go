package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/joindin/joindin/cache"
)

// Profile is the part of users/show.json the application keeps.
type Profile struct {
	ID         string `json:"id_str"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

func profileCacheKey(screenName string) string {
	return "twitter.profile." + strings.ToLower(screenName)
}

// ShowUser fetches the public profile of screenName, signed with access.
func (c *Client) ShowUser(ctx context.Context, access *AccessToken, screenName string) (*Profile, error) {
	key := profileCacheKey(screenName)
	if c.cache != nil {
		var cached Profile
		switch err := c.cache.Get(key, &cached); {
		case err == nil:
			return &cached, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			c.log.Warn("Profile cache read failed", "key", key, "error", err)
		}
	}

	client, err := c.httpClient(access)
	if err != nil {
		return nil, fmt.Errorf("twitter: users/show: %w", err)
	}

	u := c.usersShowURL + "?" + url.Values{"screen_name": {screenName}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("twitter: users/show: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter: users/show: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, screenName)
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("twitter: users/show: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	profile := &Profile{}
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		return nil, fmt.Errorf("twitter: users/show: decode: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(key, *profile, c.profileExpires); err != nil {
			c.log.Warn("Profile cache write failed", "key", key, "error", err)
		}
	}
	return profile, nil
}
