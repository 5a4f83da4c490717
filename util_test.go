package joindin

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyValueCookie(t *testing.T) {
	raw := "\x00msg:To receive notifications; please enter your e-mail address.<br />\x00\x00url_after_login:http://joind.in/event/1\x00"
	got := map[string]string{}
	ParseKeyValueCookie(url.QueryEscape(raw), func(key, val string) {
		got[key] = val
	})
	assert.Equal(t, map[string]string{
		"msg":             "To receive notifications; please enter your e-mail address.<br />",
		"url_after_login": "http://joind.in/event/1",
	}, got)

	got = map[string]string{}
	ParseKeyValueCookie("garbage", func(key, val string) { got[key] = val })
	assert.Empty(t, got)
}
