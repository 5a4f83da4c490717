package controllers

import (
	"github.com/joindin/joindin"
)

// Routes registers every action on router.
func Routes(router *joindin.Router, auth *Auth, client TwitterClient) error {
	tw := &Twitter{Auth: auth, Client: client}
	user := &User{Auth: auth}

	for _, r := range []struct {
		method, path, action string
		handler              joindin.ActionFunc
	}{
		{"GET", "/", "User.Index", user.Main},
		{"GET", "/twitter/request_token", "Twitter.RequestToken", tw.RequestToken},
		{"GET", "/twitter/access_token", "Twitter.AccessToken", tw.AccessToken},
		{"GET", "/user/login", "User.Login", user.Login},
		{"GET", "/user/main", "User.Main", user.Main},
		{"GET", "/user/manage", "User.Manage", user.Manage},
		{"GET", "/user/logout", "User.Logout", user.Logout},
	} {
		if err := router.Handle(r.method, r.path, r.action, r.handler); err != nil {
			return err
		}
	}
	return nil
}
