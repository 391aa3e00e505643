package migrations

import "embed"

// Files holds the forward-only SQL migrations compiled into the binary.
// Applied once each, in filename order, tracked via schema_migrations.
//
//go:embed *.sql
var Files embed.FS
