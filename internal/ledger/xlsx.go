package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/tradeledger/internal/domain/models"
	"github.com/guttosm/tradeledger/internal/report"
)

// ParseXLSX reads the first worksheet of an Excel ledger. The first non-empty
// row is the header; the column rules are the same as ParseCSV.
//
// Cells are read unformatted. A numeric trade_date cell is an Excel date serial
// and is rewritten as YYYY-MM-DD.
func ParseXLSX(ctx context.Context, r io.Reader) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyLedger
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	// Skip leading blank rows.
	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, ErrEmptyLedger
	}

	header := records[start]
	idx, err := indexHeader(header)
	if err != nil {
		var mErr *report.MalformedInputError
		if errors.As(err, &mErr) {
			mErr.Line = start + 1
		}
		return nil, err
	}

	rows := make([]models.RawRow, 0, len(records)-start-1)
	for i := start + 1; i < len(records); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isBlank(records[i]) {
			continue
		}
		line := i + 1 // spreadsheet rows are 1-based
		if len(records[i]) > len(header) && !isBlank(records[i][len(header):]) {
			return nil, report.Malformed(line, "", "", fmt.Sprintf("expected at most %d cells, got %d", len(header), len(records[i])))
		}
		row := idx.toRawRow(line, records[i])
		row.TradeDate = serialToDate(row.TradeDate, date1904)
		rows = append(rows, row)
	}
	return rows, nil
}

// serialToDate converts an Excel date serial to YYYY-MM-DD. Anything else is
// returned unchanged for the normalizer to judge.
func serialToDate(cell string, date1904 bool) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || v <= 0 {
		return cell
	}
	t, err := excelize.ExcelDateToTime(v, date1904)
	if err != nil {
		return cell
	}
	return t.Format("2006-01-02")
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
