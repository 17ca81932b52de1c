package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/guttosm/tradeledger/config"
	"github.com/guttosm/tradeledger/internal/api"
	"github.com/guttosm/tradeledger/internal/instrumentation"
	"github.com/guttosm/tradeledger/internal/ledger"
	"github.com/guttosm/tradeledger/internal/report"
	"github.com/guttosm/tradeledger/internal/service"
	"github.com/guttosm/tradeledger/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Creates a dedicated Prometheus registry and the report/HTTP metrics.
//   - Builds the report service from the configured thresholds.
//   - When the ledger store is enabled, connects to PostgreSQL using InitPostgres()
//     and exposes it as the source=ledger data source.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := instrumentation.NewMetrics(reg)

	svc := NewReportService(cfg, metrics)

	// The store stays a nil interface when disabled so handlers report missing input.
	var (
		store ledger.Source
		ping  func(context.Context) error
		db    *sql.DB
	)
	if cfg.Ledger.StoreEnabled {
		var err error
		// indirection for unit testing
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo := storage.NewLedgerRepository(db)
		store = ledger.NewStoreSource(repo)
		ping = repo.Ping
	}

	handler := api.NewHandler(svc, store, int64(cfg.Server.MaxUploadMB)<<20)

	router := api.NewRouter(handler, api.RouterOptions{
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		RequestTimeout:     cfg.Server.RequestTimeout,
		Metrics:            metrics,
		Gatherer:           reg,
	})

	api.NewHealthHandler(ping).Register(router)

	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	return router, cleanup, nil
}

// NewReportService builds the report service with the thresholds from cfg.
// metrics may be nil.
func NewReportService(cfg config.Config, metrics *instrumentation.Metrics) service.ReportService {
	return service.NewReportService(ReportOptions(cfg.Report), metrics)
}

// ReportOptions converts the report configuration into aggregator options.
// Zero values fall back to the defaults so a partially filled config still works.
func ReportOptions(rc config.ReportConfig) report.Options {
	opts := report.DefaultOptions()
	if rc.DailyTopN > 0 {
		opts.DailyTopN = rc.DailyTopN
	}
	if rc.TopN > 0 {
		opts.TopN = rc.TopN
	}
	if rc.HighValueThreshold.IsPositive() {
		opts.HighValueThreshold = rc.HighValueThreshold
	}
	if rc.HighFrequencyThreshold > 0 {
		opts.HighFrequencyThreshold = rc.HighFrequencyThreshold
	}
	if rc.ActiveWeeklyTrades > 0 {
		opts.ActiveWeeklyTrades = rc.ActiveWeeklyTrades
	}
	if rc.ModerateWeeklyTrades > 0 {
		opts.ModerateWeeklyTrades = rc.ModerateWeeklyTrades
	}
	if rc.DormancyWindowDays > 0 {
		opts.DormancyWindowDays = rc.DormancyWindowDays
	}
	return opts
}
