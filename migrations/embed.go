// Package migrations embeds the baseline schema applied by DB_BOOTSTRAP.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
