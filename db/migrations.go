// Package db embeds the goose migrations for the persistent price cache.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
