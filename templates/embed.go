// Package templates carries the HTML templates compiled into the
// binary, so deployments need no files alongside the executable.
package templates

import "embed"

//go:embed *.html
var Files embed.FS
