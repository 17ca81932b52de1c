package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/tradeledger/internal/domain/models"
	pq "github.com/lib/pq"
)

// LedgerRepository defines the contract for the raw ledger landing table.
//
// Rows are stored exactly as read from the source files (text cells, NULL for
// absent values) so every report re-runs normalization over them.
type LedgerRepository interface {
	IngestFile(ctx context.Context, file string, rows []models.RawRow, batchSize int) error
	LoadRows(ctx context.Context) ([]models.RawRow, error)
	HasIngestionForFile(ctx context.Context, file string) (bool, error)
	Ping(ctx context.Context) error
}

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// IngestFile replaces everything stored for file with rows and records the
// file in ingestion_log, all in a single transaction.
//
// Behavior:
//   - Rows left by a previous ingestion of file are deleted first.
//   - Rows are copied in chunks of batchSize (<= 0 copies everything at once).
//   - On any failure the transaction is rolled back, so the store and the
//     ingestion log keep their previous state.
func (r *ledgerRepository) IngestFile(ctx context.Context, file string, rows []models.RawRow, batchSize int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	rollback := func(err error) error {
		_ = tx.Rollback()
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		return rollback(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_rows WHERE source_file = $1`, file); err != nil {
		return rollback(fmt.Errorf("delete existing rows: %w", err))
	}

	if batchSize <= 0 {
		batchSize = max(len(rows), 1)
	}
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		if err := copyRows(ctx, tx, file, rows[start:end]); err != nil {
			return rollback(fmt.Errorf("copy rows %d-%d: %w", start+1, end, err))
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ingestion_log (file_name, row_count)
		VALUES ($1, $2)
		ON CONFLICT (file_name)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, file, len(rows)); err != nil {
		return rollback(fmt.Errorf("upsert ingestion log: %w", err))
	}

	return tx.Commit()
}

// copyRows streams one chunk of rows into ledger_rows with COPY.
func copyRows(ctx context.Context, tx *sql.Tx, file string, rows []models.RawRow) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"ledger_rows",
		"source_file",
		"line",
		"trade_date",
		"client_id",
		"scrip_name",
		"buy_qty",
		"buy_price",
		"sell_qty",
		"sell_price",
	))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	// absent cells are stored as NULL
	toNull := func(s string) interface{} {
		if s == "" {
			return nil
		}
		return s
	}

	for _, rec := range rows {
		if _, err := stmt.ExecContext(ctx,
			file,
			rec.Line,
			toNull(rec.TradeDate),
			toNull(rec.ClientID),
			toNull(rec.ScripName),
			toNull(rec.BuyQty),
			toNull(rec.BuyPrice),
			toNull(rec.SellQty),
			toNull(rec.SellPrice),
		); err != nil {
			return err
		}
	}

	// flush the COPY buffer
	_, err = stmt.ExecContext(ctx)
	return err
}

// LoadRows returns every stored row in insertion order, tagged with its source file.
func (r *ledgerRepository) LoadRows(ctx context.Context) ([]models.RawRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT source_file, line, trade_date, client_id, scrip_name, buy_qty, buy_price, sell_qty, sell_price
		FROM ledger_rows
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.RawRow
	for rows.Next() {
		var (
			rec   models.RawRow
			cells [7]sql.NullString
		)
		if err := rows.Scan(&rec.Source, &rec.Line, &cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5], &cells[6]); err != nil {
			return nil, err
		}
		rec.TradeDate = cells[0].String
		rec.ClientID = cells[1].String
		rec.ScripName = cells[2].String
		rec.BuyQty = cells[3].String
		rec.BuyPrice = cells[4].String
		rec.SellQty = cells[5].String
		rec.SellPrice = cells[6].String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HasIngestionForFile checks if a ledger file was already ingested.
func (r *ledgerRepository) HasIngestionForFile(ctx context.Context, file string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_name = $1)`, file).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ledgerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
