// Package twitter signs visitors in with Twitter's OAuth 1.0a flow and looks
// up their public profile.
//
// The flow is two requests long. GetRequestToken obtains a temporary token
// and the URL to send the visitor to; once Twitter redirects back with a
// verifier, GetAccessToken exchanges both for an access token that names the
// visitor's screen name.
package twitter
