package migrations

import "embed"

// FS contains embedded SQLite migrations for fingerprint storage.
//
//go:embed *.sql
var FS embed.FS
