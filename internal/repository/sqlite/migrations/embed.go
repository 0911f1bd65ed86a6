// Package migrations embeds the SQL migration files so the binary is
// self-contained — no migrations directory to ship alongside it.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
