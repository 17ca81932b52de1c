package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/guttosm/tradeledger/config"
	"github.com/guttosm/tradeledger/internal/logger"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens the ledger store described by cfg.Postgres and checks
// that it answers within pingTimeout.
//
// The prebuilt cfg.Postgres.URL is used when LoadConfig filled it, otherwise
// the URL is rendered from the individual fields. A handle whose ping fails
// is closed before returning.
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = cfg.Postgres.DSN()
	}

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping ledger store %s/%s: %w", cfg.Postgres.Host, cfg.Postgres.DBName, err)
	}

	logger.L().Info().
		Str("host", cfg.Postgres.Host).
		Str("db", cfg.Postgres.DBName).
		Msg("ledger store connected")
	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
