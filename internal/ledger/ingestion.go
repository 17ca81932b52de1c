package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradeledger/internal/logger"
	"github.com/guttosm/tradeledger/internal/report"
	"github.com/guttosm/tradeledger/internal/storage"
)

const (
	defaultBatchSize = 5000
	maxParallelFiles = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.LedgerRepository {
	return storage.NewLedgerRepository(db)
}

// ProcessDirectory lands every ledger file in dir into the ledger store.
//
// Parameters:
//   - dir: directory containing .csv and/or .xlsx ledger files.
//   - db:  open *sql.DB (PostgreSQL).
//   - parallel: max files processed at once (<= 0 means min(8, NumCPU)).
//   - force: re-ingest files already present in the ingestion log.
//
// Behavior:
//   - Each file is parsed and validated with the normalizer before anything is written,
//     so a malformed ledger never reaches the store.
//   - Files already ingested are skipped unless force is set, in which case their
//     previous rows are replaced.
//   - Rows are inserted raw, in batches, so reports re-normalize them on every read.
//   - A file's rows and its ingestion log entry are written in one transaction, so a
//     failed re-ingest leaves the previous rows and log entry in place.
//   - If any file returns error, cancels the rest and returns that error.
//
// Returns:
//   - error: first error encountered (if any).
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	repo := repoCtor(db)

	files, err := ledgerFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .csv or .xlsx ledger files found in %s", dir)
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("ingestion start")

	maxParallel := maxParallelFiles
	if parallel > 0 {
		maxParallel = min(parallel, maxParallelFiles)
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, file := range files {
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(file)
			logger.L().Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).Msg("file start")

			exists, err := repo.HasIngestionForFile(gctx, base)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", file, err)
			}
			if exists && !force {
				logger.L().Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).Bool("skipped", true).Msg("already ingested")
				return nil
			}

			total, err := ingestFile(gctx, file, repo, defaultBatchSize)
			if err != nil {
				logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", file, err)
			}
			logger.L().Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

// ledgerFiles lists the supported ledger files directly under dir, sorted by name.
func ledgerFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromName(e.Name()); err != nil {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ingestFile parses, validates and persists one ledger file, replacing any
// rows stored for it before.
func ingestFile(ctx context.Context, path string, repo storage.LedgerRepository, batchSize int) (int, error) {
	src, err := NewFileSource(path)
	if err != nil {
		return 0, err
	}
	rows, err := src.Rows(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := report.Normalize(rows); err != nil {
		return 0, err
	}

	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if err := repo.IngestFile(ctx, filepath.Base(path), rows, batchSize); err != nil {
		return 0, fmt.Errorf("store rows: %w", err)
	}
	return len(rows), nil
}
