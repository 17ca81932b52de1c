package app

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/guttosm/tradeledger/internal/logger"
)

// DefaultMigrationsDir is where the goose SQL migrations live, relative to the repo root.
const DefaultMigrationsDir = "db/migrations"

// gooseUp is an indirection for unit testing.
var gooseUp = goose.Up

// RunMigrations applies every pending goose migration found in dir.
func RunMigrations(db *sql.DB, dir string) error {
	if dir == "" {
		dir = DefaultMigrationsDir
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUp(db, dir); err != nil {
		return fmt.Errorf("apply migrations from %s: %w", dir, err)
	}
	logger.L().Info().Str("dir", dir).Msg("migrations applied")
	return nil
}
