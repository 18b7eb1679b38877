// Package migrations holds the embedded SQL migration files for the SQLite
// backend and the runner that applies them.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
