package migration

import "embed"

// Scripts holds the MySQL schema migrations applied by goose.
//
//go:embed scripts/*.sql
var Scripts embed.FS

const scriptsDir = "scripts"
