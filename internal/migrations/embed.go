// Package migrations содержит SQL схемы, встроенные в бинарник.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
