package web

import "embed"

// StaticFiles holds the browser UI served at "/".
//
//go:embed static
var StaticFiles embed.FS
