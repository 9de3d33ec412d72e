package migrations

import "embed"

// FS holds the SQL migrations, one directory per database backend.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
