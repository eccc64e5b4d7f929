// Package db carries the SQL migrations, embedded so the migrate binary has no runtime file dependency.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
