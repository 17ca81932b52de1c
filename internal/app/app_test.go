package app

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/guttosm/tradeledger/config"
	"github.com/guttosm/tradeledger/internal/report"
)

func baseConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "8080", MaxUploadMB: 1},
	}
}

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when the store is enabled but unreachable.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	cfg := baseConfig()
	cfg.Ledger.StoreEnabled = true
	cfg.Postgres = config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329,
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}
	config.AppConfig = cfg

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_WithoutStore(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = baseConfig()

	oldOpener := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) {
		t.Fatalf("postgres must not be opened when the store is disabled")
		return nil, nil
	}
	t.Cleanup(func() { postgresOpener = oldOpener })

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}

	// source=ledger without a store is missing input.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/reports/full?source=ledger", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("source=ledger status=%d", w.Code)
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	// Override opener to return a sqlmock DB that pings successfully
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectPing()
	mock.ExpectQuery("SELECT (.+) FROM ledger_rows").
		WillReturnRows(sqlmock.NewRows([]string{"source_file", "line", "trade_date", "client_id", "scrip_name", "buy_qty", "buy_price", "sell_qty", "sell_price"}).
			AddRow("seed.csv", 2, "2024-01-02", "C1", "ACME", "10", "5", nil, nil))
	mock.ExpectClose()

	old := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	oldCfg := config.AppConfig
	cfg := baseConfig()
	cfg.Ledger.StoreEnabled = true
	config.AppConfig = cfg
	t.Cleanup(func() {
		postgresOpener = old
		config.AppConfig = oldCfg
	})

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err set or nil components")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/api/v1/reports/client-summary?source=ledger", nil))
	if w3.Code != http.StatusOK || !strings.Contains(w3.Body.String(), `"client_id":"C1"`) {
		t.Fatalf("client-summary status=%d body=%s", w3.Code, w3.Body.String())
	}

	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReportOptions(t *testing.T) {
	if got := ReportOptions(config.ReportConfig{}); got.TopN != report.DefaultOptions().TopN || !got.HighValueThreshold.Equal(report.DefaultOptions().HighValueThreshold) {
		t.Fatalf("zero config must fall back to defaults: %+v", got)
	}

	got := ReportOptions(config.ReportConfig{
		DailyTopN:              3,
		TopN:                   7,
		HighValueThreshold:     decimal.NewFromInt(100),
		HighFrequencyThreshold: 2,
		ActiveWeeklyTrades:     4,
		ModerateWeeklyTrades:   2,
		DormancyWindowDays:     14,
	})
	want := report.Options{
		DailyTopN:              3,
		TopN:                   7,
		HighValueThreshold:     decimal.NewFromInt(100),
		HighFrequencyThreshold: 2,
		ActiveWeeklyTrades:     4,
		ModerateWeeklyTrades:   2,
		DormancyWindowDays:     14,
	}
	if got.DailyTopN != want.DailyTopN || got.TopN != want.TopN || !got.HighValueThreshold.Equal(want.HighValueThreshold) ||
		got.HighFrequencyThreshold != want.HighFrequencyThreshold || got.ActiveWeeklyTrades != want.ActiveWeeklyTrades ||
		got.ModerateWeeklyTrades != want.ModerateWeeklyTrades || got.DormancyWindowDays != want.DormancyWindowDays {
		t.Fatalf("ReportOptions() = %+v, want %+v", got, want)
	}
}

func TestRunMigrations(t *testing.T) {
	old := gooseUp
	t.Cleanup(func() { gooseUp = old })

	var gotDir string
	gooseUp = func(_ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	if err := RunMigrations(nil, ""); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	if gotDir != DefaultMigrationsDir {
		t.Fatalf("dir = %q, want %q", gotDir, DefaultMigrationsDir)
	}

	gooseUp = func(*sql.DB, string, ...goose.OptionsFunc) error { return errors.New("boom") }
	if err := RunMigrations(nil, "x"); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped goose error, got %v", err)
	}
}
