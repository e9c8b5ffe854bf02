// Package migrations contiene el esquema SQL (goose) embebido en el binario.
package migrations

import "embed"

// FS archivos de migración en formato goose.
//
//go:embed *.sql
var FS embed.FS
