package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/tradeledger/config"
	"github.com/guttosm/tradeledger/internal/app"
	"github.com/guttosm/tradeledger/internal/domain/dto"
	"github.com/guttosm/tradeledger/internal/ledger"
	"github.com/guttosm/tradeledger/internal/logger"
	"github.com/guttosm/tradeledger/internal/service"
	"github.com/guttosm/tradeledger/internal/storage"
	"github.com/guttosm/tradeledger/internal/tracing"
)

// Report kinds accepted by the report command.
const (
	kindClientSummary = "client-summary"
	kindDailySummary  = "daily-summary"
	kindManagement    = "management"
	kindAnomalies     = "anomalies"
	kindFull          = "full"
)

var reportKinds = []string{kindClientSummary, kindDailySummary, kindManagement, kindAnomalies, kindFull}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tradeledger",
		Short:         "Trade ledger reports",
		Long:          "Computes client, daily, management and anomaly reports over a trade ledger.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig()
			logger.Init()
			// Spans go to stderr so they never mix with report output on stdout.
			return tracing.Init(config.AppConfig.Tracing.Enabled, version, os.Stderr)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return tracing.Shutdown(ctx)
		},
	}

	root.AddCommand(newServeCmd(), newIngestCmd(), newMigrateCmd(), newReportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			if port == "" {
				port = config.AppConfig.Server.Port
			}

			logger.L().Info().Bool("ledger_store", config.AppConfig.Ledger.StoreEnabled).Msg("starting API server")
			router, cleanup, err := app.InitializeApp()
			if err != nil {
				logger.L().Error().Err(err).Msg("app init error")
				return err
			}

			return runServer(cmd.Context(), router, port, cleanup)
		},
	}
	cmd.Flags().String("port", "", "Port for the API server (defaults to SERVER_PORT)")
	return cmd
}

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Land ledger files into the Postgres ledger store",
		Long: `Ingest every .csv and .xlsx ledger file of a directory into the ledger store.

Each file is validated before it is written; a malformed file is rejected whole.
Files already ingested are skipped unless --force is given.`,
		Example: `  tradeledger ingest --dir ./data/input
  tradeledger ingest --dir ./data/input --parallel 4 --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			parallel, _ := cmd.Flags().GetInt("parallel")
			force, _ := cmd.Flags().GetBool("force")
			migrate, _ := cmd.Flags().GetBool("migrate")
			if !cmd.Flags().Changed("parallel") {
				parallel = config.AppConfig.Ledger.IngestParallel
			}

			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				logger.L().Error().Err(err).Msg("db connect error")
				return err
			}
			defer func() { _ = db.Close() }()

			if migrate {
				if err := app.RunMigrations(db, app.DefaultMigrationsDir); err != nil {
					return err
				}
			}

			logger.L().Info().Str("dir", dir).Msg("running ingestion")
			if err := ledger.ProcessDirectory(cmd.Context(), dir, db, parallel, force); err != nil {
				logger.L().Error().Err(err).Msg("ingestion failed")
				return err
			}
			logger.L().Info().Msg("ingestion completed successfully")
			return nil
		},
	}
	cmd.Flags().String("dir", "./data/input", "Directory with .csv/.xlsx ledger files")
	cmd.Flags().Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	cmd.Flags().Bool("force", false, "Re-ingest files already present in the ingestion log")
	cmd.Flags().Bool("migrate", false, "Apply database migrations before ingesting")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			return app.RunMigrations(db, dir)
		},
	}
	cmd.Flags().String("dir", app.DefaultMigrationsDir, "Directory with goose SQL migrations")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "report <kind>",
		Short:     "Compute a report and print it as JSON",
		ValidArgs: reportKinds,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `  tradeledger report daily-summary --file ./data/ledger.csv
  tradeledger report anomalies --file ./data/ledger.xlsx
  tradeledger report full --ledger`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			fromStore, _ := cmd.Flags().GetBool("ledger")

			var src ledger.Source
			switch {
			case fromStore:
				db, err := app.InitPostgres(config.AppConfig)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				src = ledger.NewStoreSource(storage.NewLedgerRepository(db))
			case file != "":
				fs, err := ledger.NewFileSource(file)
				if err != nil {
					return err
				}
				src = fs
			}

			svc := app.NewReportService(config.AppConfig, nil)
			return runReport(cmd.Context(), cmd.OutOrStdout(), svc, args[0], src)
		},
	}
	cmd.Flags().String("file", "", "Ledger file (.csv or .xlsx)")
	cmd.Flags().Bool("ledger", false, "Read the ingested ledger store instead of a file")
	cmd.MarkFlagsMutuallyExclusive("file", "ledger")
	return cmd
}

// runReport computes one report kind from src and writes it to w as indented JSON.
func runReport(ctx context.Context, w io.Writer, svc service.ReportService, kind string, src ledger.Source) error {
	var (
		out any
		err error
	)
	switch kind {
	case kindClientSummary:
		rows, e := svc.ClientTradeSummary(ctx, src)
		out, err = dto.NewClientSummaryResponse(rows), e
	case kindDailySummary:
		rows, e := svc.DailySummary(ctx, src)
		out, err = dto.NewDailySummaryResponse(rows), e
	case kindManagement:
		m, e := svc.ManagementReport(ctx, src)
		out, err = dto.NewManagementReportResponse(m), e
	case kindAnomalies:
		a, e := svc.AnomalyReport(ctx, src)
		out, err = dto.NewAnomalyReportResponse(a), e
	case kindFull:
		f, e := svc.FullReport(ctx, src)
		out, err = dto.NewFullReportResponse(f), e
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
