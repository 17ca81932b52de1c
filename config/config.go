package config

import (
	"log"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, report thresholds and the optional Postgres ledger store.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	SERVER_MAX_UPLOAD_MB=32
//	RATE_LIMIT_PER_MINUTE=60
//	LEDGER_STORE_ENABLED=true
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=tradeledger
//	POSTGRES_SSLMODE=disable
//	REPORT_HIGH_VALUE_THRESHOLD=5000000
//	TRACING_ENABLED=false
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Ledger   LedgerConfig   // Ledger store and ingestion settings
	Postgres PostgresConfig // PostgreSQL connection settings (used when Ledger.StoreEnabled)
	Report   ReportConfig   // Report thresholds and list sizes
	Tracing  TracingConfig  // OpenTelemetry settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "8080")
	MaxUploadMB        int           // Largest accepted ledger upload in MiB
	RequestTimeout     time.Duration // Per-request deadline
	RateLimitPerMinute int           // Requests per client IP per minute; 0 disables the limiter
}

// LedgerConfig controls the Postgres-backed ledger store.
type LedgerConfig struct {
	StoreEnabled   bool // Serve source=ledger requests and allow ingestion
	IngestParallel int  // Files ingested concurrently (0 = min(8, NumCPU))
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// DSN renders the connection URL understood by lib/pq. User, password and
// database name are escaped, so credentials may contain '@', ':' or '/'.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.DBName,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// ReportConfig mirrors report.Options in configuration form.
type ReportConfig struct {
	DailyTopN              int
	TopN                   int
	HighValueThreshold     decimal.Decimal
	HighFrequencyThreshold int
	ActiveWeeklyTrades     float64
	ModerateWeeklyTrades   float64
	DormancyWindowDays     int
}

// TracingConfig toggles span export.
type TracingConfig struct {
	Enabled bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present and sane.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	setDefaults()

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = fromViper()

	// Validate critical fields
	validateConfig()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MAX_UPLOAD_MB", 32)
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("LEDGER_STORE_ENABLED", false)
	viper.SetDefault("LEDGER_INGEST_PARALLEL", 0)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "tradeledger")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("REPORT_DAILY_TOP_N", 5)
	viper.SetDefault("REPORT_TOP_N", 10)
	viper.SetDefault("REPORT_HIGH_VALUE_THRESHOLD", "5000000")
	viper.SetDefault("REPORT_HIGH_FREQUENCY_THRESHOLD", 20)
	viper.SetDefault("REPORT_ACTIVE_WEEKLY_TRADES", 5.0)
	viper.SetDefault("REPORT_MODERATE_WEEKLY_TRADES", 1.0)
	viper.SetDefault("REPORT_DORMANCY_WINDOW_DAYS", 30)

	viper.SetDefault("TRACING_ENABLED", false)
}

func fromViper() Config {
	// An unparseable threshold leaves the zero value and is reported by validateConfig.
	threshold, _ := decimal.NewFromString(viper.GetString("REPORT_HIGH_VALUE_THRESHOLD"))

	cfg := Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			MaxUploadMB:        viper.GetInt("SERVER_MAX_UPLOAD_MB"),
			RequestTimeout:     viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Ledger: LedgerConfig{
			StoreEnabled:   viper.GetBool("LEDGER_STORE_ENABLED"),
			IngestParallel: viper.GetInt("LEDGER_INGEST_PARALLEL"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Report: ReportConfig{
			DailyTopN:              viper.GetInt("REPORT_DAILY_TOP_N"),
			TopN:                   viper.GetInt("REPORT_TOP_N"),
			HighValueThreshold:     threshold,
			HighFrequencyThreshold: viper.GetInt("REPORT_HIGH_FREQUENCY_THRESHOLD"),
			ActiveWeeklyTrades:     viper.GetFloat64("REPORT_ACTIVE_WEEKLY_TRADES"),
			ModerateWeeklyTrades:   viper.GetFloat64("REPORT_MODERATE_WEEKLY_TRADES"),
			DormancyWindowDays:     viper.GetInt("REPORT_DORMANCY_WINDOW_DAYS"),
		},
		Tracing: TracingConfig{
			Enabled: viper.GetBool("TRACING_ENABLED"),
		},
	}

	cfg.Postgres.URL = cfg.Postgres.DSN()
	return cfg
}

// validateConfig terminates the application when AppConfig is incomplete.
//
// Behavior:
//   - Collects problems via problems().
//   - If any are found, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	if p := problems(AppConfig); len(p) > 0 {
		log.Fatalf("❌ Invalid configuration: %v\n", p)
	}
}

// problems lists missing or invalid settings. Postgres settings are only
// required when the ledger store is enabled.
func problems(cfg Config) []string {
	var out []string

	if cfg.Server.Port == "" {
		out = append(out, "SERVER_PORT")
	}
	if cfg.Server.MaxUploadMB <= 0 {
		out = append(out, "SERVER_MAX_UPLOAD_MB must be positive")
	}
	if cfg.Report.DailyTopN <= 0 {
		out = append(out, "REPORT_DAILY_TOP_N must be positive")
	}
	if cfg.Report.TopN <= 0 {
		out = append(out, "REPORT_TOP_N must be positive")
	}
	if !cfg.Report.HighValueThreshold.IsPositive() {
		out = append(out, "REPORT_HIGH_VALUE_THRESHOLD must be a positive number")
	}
	if cfg.Report.ActiveWeeklyTrades < cfg.Report.ModerateWeeklyTrades {
		out = append(out, "REPORT_ACTIVE_WEEKLY_TRADES must not be below REPORT_MODERATE_WEEKLY_TRADES")
	}
	if cfg.Report.DormancyWindowDays < 0 {
		out = append(out, "REPORT_DORMANCY_WINDOW_DAYS must not be negative")
	}

	if cfg.Ledger.StoreEnabled {
		if cfg.Postgres.Host == "" {
			out = append(out, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			out = append(out, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			out = append(out, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			out = append(out, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			out = append(out, "POSTGRES_DB")
		}
	}

	return out
}
