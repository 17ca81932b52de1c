package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradeledger/internal/domain/dto"
	"github.com/guttosm/tradeledger/internal/ledger"
	"github.com/guttosm/tradeledger/internal/middleware"
	"github.com/guttosm/tradeledger/internal/report"
	"github.com/guttosm/tradeledger/internal/service"
)

const (
	// formFileField is the multipart field carrying the ledger upload.
	formFileField = "file"
	// sourceLedger selects the ingested ledger store instead of an upload.
	sourceLedger = "ledger"

	defaultMaxUploadBytes int64 = 32 << 20
)

// errStoreDisabled is returned for source=ledger when no store is configured.
var errStoreDisabled = fmt.Errorf("ledger store is not enabled: %w", report.ErrMissingInput)

// Handler provides HTTP handlers for the ledger report endpoints.
//
// Responsibilities:
//   - Resolve the ledger source of a request (multipart upload or the ingested store)
//   - Invoke the report service with the request context
//   - Translate domain results into response DTOs
//   - Map error kinds to HTTP status codes with a dto.ErrorResponse body
type Handler struct {
	svc            service.ReportService
	store          ledger.Source
	maxUploadBytes int64
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc: report service computing the reports.
//   - store: source used for source=ledger requests; nil disables it.
//   - maxUploadBytes: upload size limit (<= 0 uses 32 MiB).
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.ReportService, store ledger.Source, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{svc: svc, store: store, maxUploadBytes: maxUploadBytes}
}

// ClientSummary godoc
// @Summary      Client trade summary
// @Description  Lifetime buy/sell totals, distinct trade days and most traded scrip per client
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    false  "Ledger file (.csv or .xlsx)"
// @Param        source  query     string  false  "Read the ingested ledger store instead of an upload" Enums(ledger)
// @Success      200     {array}   dto.ClientSummaryResponse
// @Failure      400     {object}  dto.ErrorResponse  "Missing input"
// @Failure      413     {object}  dto.ErrorResponse  "Upload too large"
// @Failure      415     {object}  dto.ErrorResponse  "Unsupported file type"
// @Failure      422     {object}  dto.ErrorResponse  "Malformed input"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/reports/client-summary [post]
func (h *Handler) ClientSummary(c *gin.Context) {
	serve(c, h, "failed to build client summary", h.svc.ClientTradeSummary, dto.NewClientSummaryResponse)
}

// DailySummary godoc
// @Summary      Daily summary
// @Description  Market totals, unique clients and top-5 clients/scrips per trade date
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    false  "Ledger file (.csv or .xlsx)"
// @Param        source  query     string  false  "Read the ingested ledger store instead of an upload" Enums(ledger)
// @Success      200     {array}   dto.DailySummaryResponse
// @Failure      400     {object}  dto.ErrorResponse  "Missing input"
// @Failure      413     {object}  dto.ErrorResponse  "Upload too large"
// @Failure      415     {object}  dto.ErrorResponse  "Unsupported file type"
// @Failure      422     {object}  dto.ErrorResponse  "Malformed input"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/reports/daily-summary [post]
func (h *Handler) DailySummary(c *gin.Context) {
	serve(c, h, "failed to build daily summary", h.svc.DailySummary, dto.NewDailySummaryResponse)
}

// ManagementReport godoc
// @Summary      Management report
// @Description  Top-10 rankings, buy/sell value distributions and client activity categorization
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    false  "Ledger file (.csv or .xlsx)"
// @Param        source  query     string  false  "Read the ingested ledger store instead of an upload" Enums(ledger)
// @Success      200     {object}  dto.ManagementReportResponse
// @Failure      400     {object}  dto.ErrorResponse  "Missing input"
// @Failure      413     {object}  dto.ErrorResponse  "Upload too large"
// @Failure      415     {object}  dto.ErrorResponse  "Unsupported file type"
// @Failure      422     {object}  dto.ErrorResponse  "Malformed input"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/reports/management [post]
func (h *Handler) ManagementReport(c *gin.Context) {
	serve(c, h, "failed to build management report", h.svc.ManagementReport, dto.NewManagementReportResponse)
}

// Anomalies godoc
// @Summary      Anomaly report
// @Description  Trades with buy or sell value above 5,000,000 and clients with more than 20 trades on one day
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    false  "Ledger file (.csv or .xlsx)"
// @Param        source  query     string  false  "Read the ingested ledger store instead of an upload" Enums(ledger)
// @Success      200     {object}  dto.AnomalyReportResponse
// @Failure      400     {object}  dto.ErrorResponse  "Missing input"
// @Failure      413     {object}  dto.ErrorResponse  "Upload too large"
// @Failure      415     {object}  dto.ErrorResponse  "Unsupported file type"
// @Failure      422     {object}  dto.ErrorResponse  "Malformed input"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/reports/anomalies [post]
func (h *Handler) Anomalies(c *gin.Context) {
	serve(c, h, "failed to build anomaly report", h.svc.AnomalyReport, dto.NewAnomalyReportResponse)
}

// FullReport godoc
// @Summary      All reports
// @Description  The four reports computed from one snapshot of the ledger
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    false  "Ledger file (.csv or .xlsx)"
// @Param        source  query     string  false  "Read the ingested ledger store instead of an upload" Enums(ledger)
// @Success      200     {object}  dto.FullReportResponse
// @Failure      400     {object}  dto.ErrorResponse  "Missing input"
// @Failure      413     {object}  dto.ErrorResponse  "Upload too large"
// @Failure      415     {object}  dto.ErrorResponse  "Unsupported file type"
// @Failure      422     {object}  dto.ErrorResponse  "Malformed input"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/reports/full [post]
func (h *Handler) FullReport(c *gin.Context) {
	serve(c, h, "failed to build reports", h.svc.FullReport, dto.NewFullReportResponse)
}

// serve resolves the request's ledger source, runs compute and writes either
// the mapped result or an error response.
func serve[T, R any](c *gin.Context, h *Handler, failMsg string, compute func(context.Context, ledger.Source) (T, error), toDTO func(T) R) {
	// ─── Resolve source ───────────────────────────
	src, err := h.source(c)
	if err != nil {
		writeError(c, failMsg, err)
		return
	}

	// ─── Compute (with request context) ───────────
	out, err := compute(c.Request.Context(), src)
	if err != nil {
		writeError(c, failMsg, err)
		return
	}

	c.JSON(http.StatusOK, toDTO(out))
}

// source picks the ledger of the request. A request without an upload and
// without source=ledger yields a nil source, which the service reports as
// missing input.
func (h *Handler) source(c *gin.Context) (ledger.Source, error) {
	if c.Query("source") == sourceLedger {
		if h.store == nil {
			return nil, errStoreDisabled
		}
		return h.store, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fh, err := c.FormFile(formFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}

	format, err := ledger.FormatFromName(fh.Filename)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ledger.NewReaderSource(fh.Filename, format, f)
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case report.KindOf(err) == report.KindMissingInput:
		return http.StatusBadRequest
	case report.KindOf(err) == report.KindMalformedInput:
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, message string, err error) {
	middleware.AbortWithError(c, statusFor(err), dto.NewReportErrorResponse(message, err), err)
}
