// Package migrations holds the event audit schema, applied in file-name
// order when the store opens.
package migrations

import "embed"

// FS holds the *.up.sql files.
//
//go:embed *.up.sql
var FS embed.FS
