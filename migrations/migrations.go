// Package migrations embeds the goose SQL migrations for the vendas schema.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
