package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/tradeledger/internal/domain/models"
	"github.com/guttosm/tradeledger/internal/report"
	"github.com/guttosm/tradeledger/internal/storage"
)

var (
	// ErrEmptyLedger is returned when a ledger has no header row. It is
	// reported as missing input.
	ErrEmptyLedger = fmt.Errorf("ledger is empty: %w", report.ErrMissingInput)
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported ledger format")
)

// Format identifies how a ledger file is encoded.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromName picks the format from a file name extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Parse dispatches to the parser for the given format.
func Parse(ctx context.Context, format Format, r io.Reader) ([]models.RawRow, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(ctx, r)
	case FormatXLSX:
		return ParseXLSX(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Source yields the raw rows of one ledger. Every call re-reads the
// underlying data; nothing is cached between reports.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]models.RawRow, error)
}

// ReaderSource is a ledger held in memory, typically an uploaded file.
type ReaderSource struct {
	name   string
	format Format
	data   []byte
}

// NewReaderSource buffers r so the ledger can be read more than once.
func NewReaderSource(name string, format Format, r io.Reader) (*ReaderSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &ReaderSource{name: name, format: format, data: data}, nil
}

func (s *ReaderSource) Name() string { return s.name }

func (s *ReaderSource) Rows(ctx context.Context) ([]models.RawRow, error) {
	return Parse(ctx, s.format, bytes.NewReader(s.data))
}

// FileSource reads a ledger file from disk on every call.
type FileSource struct {
	path   string
	format Format
}

// NewFileSource returns a source for path, inferring the format from its extension.
func NewFileSource(path string) (*FileSource, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, format: format}, nil
}

func (s *FileSource) Name() string { return filepath.Base(s.path) }

func (s *FileSource) Rows(ctx context.Context) ([]models.RawRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(ctx, s.format, f)
}

// StoreSource reads every row landed in the ledger store.
type StoreSource struct {
	repo storage.LedgerRepository
}

// NewStoreSource wraps a ledger repository as a Source.
func NewStoreSource(repo storage.LedgerRepository) *StoreSource {
	return &StoreSource{repo: repo}
}

func (s *StoreSource) Name() string { return "ledger_store" }

func (s *StoreSource) Rows(ctx context.Context) ([]models.RawRow, error) {
	rows, err := s.repo.LoadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger rows: %w", err)
	}
	return rows, nil
}
