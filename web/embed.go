// Package web holds the HTML templates, embedded so the server and its
// tests render the same views regardless of working directory.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
