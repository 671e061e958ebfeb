// Package web embeds the browser shell served for / and unmatched paths.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
