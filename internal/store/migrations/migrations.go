// Package migrations embeds the app.db schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
