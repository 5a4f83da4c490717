package models

import (
	"strconv"
	"time"
)

// User is a joind.in account. Accounts created through Twitter have no
// password or email until the owner adds them.
type User struct {
	ID              int64
	Username        string
	Password        string
	Email           string
	FullName        string
	TwitterUsername string
	Active          bool
	Admin           bool
	Created         time.Time
	LastLogin       time.Time
}

// DisplayName is the full name, or the username when there is none.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// HasPassword reports whether the user can sign in without Twitter.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// IDString is the ID in the form the session stores.
func (u *User) IDString() string {
	return strconv.FormatInt(u.ID, 10)
}
