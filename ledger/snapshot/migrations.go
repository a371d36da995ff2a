package snapshot

import "embed"

// Migrations holds the embedded schema migrations for the SQL backend.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migration files inside Migrations.
const MigrationsDir = "migrations"
