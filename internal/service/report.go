package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradeledger/internal/domain/models"
	"github.com/guttosm/tradeledger/internal/instrumentation"
	"github.com/guttosm/tradeledger/internal/ledger"
	"github.com/guttosm/tradeledger/internal/logger"
	"github.com/guttosm/tradeledger/internal/report"
	"github.com/guttosm/tradeledger/internal/tracing"
)

// Report names used in logs, metrics and span names.
const (
	ReportClientSummary = "client_summary"
	ReportDailySummary  = "daily_summary"
	ReportManagement    = "management_report"
	ReportAnomalies     = "anomaly_report"
	ReportFull          = "full_report"
)

// ReportService computes the ledger reports. Every call loads and normalizes
// its own snapshot of src; nothing is shared or cached between calls.
type ReportService interface {
	ClientTradeSummary(ctx context.Context, src ledger.Source) ([]models.ClientSummary, error)
	DailySummary(ctx context.Context, src ledger.Source) ([]models.DailySummary, error)
	ManagementReport(ctx context.Context, src ledger.Source) (models.ManagementReport, error)
	AnomalyReport(ctx context.Context, src ledger.Source) (models.AnomalyReport, error)
	FullReport(ctx context.Context, src ledger.Source) (models.FullReport, error)
}

type reportService struct {
	opts    report.Options
	metrics *instrumentation.Metrics
}

// NewReportService returns a ReportService using opts. metrics may be nil.
func NewReportService(opts report.Options, metrics *instrumentation.Metrics) ReportService {
	return &reportService{opts: opts, metrics: metrics}
}

func (s *reportService) ClientTradeSummary(ctx context.Context, src ledger.Source) ([]models.ClientSummary, error) {
	return compute(ctx, s, ReportClientSummary, src, func(trades []models.Trade) []models.ClientSummary {
		return report.ClientTradeSummary(trades)
	})
}

func (s *reportService) DailySummary(ctx context.Context, src ledger.Source) ([]models.DailySummary, error) {
	return compute(ctx, s, ReportDailySummary, src, func(trades []models.Trade) []models.DailySummary {
		return report.DailySummary(trades, s.opts)
	})
}

func (s *reportService) ManagementReport(ctx context.Context, src ledger.Source) (models.ManagementReport, error) {
	return compute(ctx, s, ReportManagement, src, func(trades []models.Trade) models.ManagementReport {
		return report.ManagementReport(trades, s.opts)
	})
}

func (s *reportService) AnomalyReport(ctx context.Context, src ledger.Source) (models.AnomalyReport, error) {
	return compute(ctx, s, ReportAnomalies, src, func(trades []models.Trade) models.AnomalyReport {
		return report.AnomalyReport(trades, s.opts)
	})
}

// FullReport normalizes the ledger once and runs the four aggregators
// concurrently over the same read-only snapshot.
func (s *reportService) FullReport(ctx context.Context, src ledger.Source) (models.FullReport, error) {
	return compute(ctx, s, ReportFull, src, func(trades []models.Trade) models.FullReport {
		var out models.FullReport
		var g errgroup.Group
		g.Go(func() error { out.ClientSummaries = report.ClientTradeSummary(trades); return nil })
		g.Go(func() error { out.DailySummaries = report.DailySummary(trades, s.opts); return nil })
		g.Go(func() error { out.Management = report.ManagementReport(trades, s.opts); return nil })
		g.Go(func() error { out.Anomalies = report.AnomalyReport(trades, s.opts); return nil })
		_ = g.Wait() // aggregators are total over a normalized set
		return out
	})
}

// compute loads and normalizes src, then applies aggregate. It owns the
// span, the metrics and the log line of one report request.
func compute[T any](ctx context.Context, s *reportService, name string, src ledger.Source, aggregate func([]models.Trade) T) (T, error) {
	var zero T
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "report."+name)
	defer span.End()

	log := logger.FromContext(ctx)

	trades, err := s.load(ctx, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.observe(name, start, err)
		log.Warn().Str("report", name).Err(err).Str("error_kind", string(report.KindOf(err))).Msg("report failed")
		return zero, err
	}
	span.SetAttributes(
		attribute.String("ledger.source", src.Name()),
		attribute.Int("ledger.trades", len(trades)),
	)

	out := aggregate(trades)

	s.observe(name, start, nil)
	log.Info().
		Str("report", name).
		Str("source", src.Name()).
		Int("trades", len(trades)).
		Dur("elapsed", time.Since(start)).
		Msg("report computed")
	return out, nil
}

// load reads the raw rows of src and normalizes them.
func (s *reportService) load(ctx context.Context, src ledger.Source) ([]models.Trade, error) {
	if src == nil {
		return nil, report.ErrMissingInput
	}
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, err
	}
	trades, err := report.Normalize(rows)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.AddRowsNormalized(len(trades))
	}
	return trades, nil
}

func (s *reportService) observe(name string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveReport(name, time.Since(start), err)
	if err != nil {
		kind := string(report.KindOf(err))
		if kind == "" {
			kind = "Internal"
		}
		s.metrics.RecordError("report_service", kind)
	}
}
