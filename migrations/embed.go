// Package migrations embeds the SQL schema migrations shipped with tasklit.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
