// Package web embeds the browser client.
package web

import "embed"

//go:embed home.html index.html assets
var FS embed.FS
