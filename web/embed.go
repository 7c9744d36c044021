// Package web embeds the admin page templates and stylesheets.
package web

import "embed"

// FS holds templates/*.html and static/*.css.
//
//go:embed templates/*.html static/*.css
var FS embed.FS
