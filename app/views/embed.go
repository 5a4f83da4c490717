// Package views embeds the HTML templates.
package views

import "embed"

// FS holds every template, named by its path below this directory.
//
//go:embed *.html user/*.html errors/*.html
var FS embed.FS
