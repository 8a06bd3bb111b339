// Package migrations embeds the database schema. The server applies it
// with goose on startup, so a fresh database needs no manual setup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
