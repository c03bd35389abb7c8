// Package schema embeds the SQLite table definitions.
package schema

import "embed"

//go:embed *.sql
var FS embed.FS
