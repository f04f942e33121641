// Package migrations ships the SQL schema inside the binary.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS
