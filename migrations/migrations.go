// Package migrations встраивает SQL-миграции в бинарный файл.
package migrations

import "embed"

// DraftsDir каталог миграций таблицы черновиков.
const DraftsDir = "drafts"

// FS содержит все SQL-миграции.
//
//go:embed drafts/*.sql
var FS embed.FS
