// Package migrations содержит SQL-миграции goose для таблицы остатков.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
