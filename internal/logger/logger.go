package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	base        zerolog.Logger
	initialized atomic.Bool
)

type ctxKey struct{}

// Init configures the global JSON logger.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
//   - LOG_FILE: path of a rotated log file written in addition to stdout (default: unset)
//   - LOG_FILE_MAX_SIZE_MB: rotate after this size (default: 100)
//   - LOG_FILE_MAX_BACKUPS: rotated files kept (default: 7)
//   - LOG_FILE_MAX_AGE_DAYS: days a rotated file is kept (default: 30)
func Init() {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if fw := fileWriter(getenv("LOG_FILE", "")); fw != nil {
		w = zerolog.MultiLevelWriter(w, fw)
	}

	base = zerolog.New(w).With().Timestamp().Logger().Level(level)
	initialized.Store(true)
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	if !initialized.Load() {
		Init()
	}
	return &base
}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by WithContext, or the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
			return &l
		}
	}
	return L()
}

// fileWriter returns a size-rotated writer for path, or nil when path is
// empty or its directory cannot be created.
func fileWriter(path string) io.Writer {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    getenvInt("LOG_FILE_MAX_SIZE_MB", 100),
		MaxBackups: getenvInt("LOG_FILE_MAX_BACKUPS", 7),
		MaxAge:     getenvInt("LOG_FILE_MAX_AGE_DAYS", 30),
		Compress:   true,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
