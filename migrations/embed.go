// Package migrations embeds the SQL files that define the relay-event
// audit schema.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
