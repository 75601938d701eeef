// Package seeddata встроенный набор демонстрационных кандидатов и его JSON схема.
package seeddata

import _ "embed"

//go:embed candidates.json
var Candidates []byte

//go:embed schema.json
var Schema []byte
