package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/tradeledger/internal/domain/models"
	"github.com/guttosm/tradeledger/internal/report"
)

// Column names of the ledger header. Matching is case-insensitive and order-free.
const (
	colTradeDate = "trade_date"
	colClientID  = "client_id"
	colScripName = "scrip_name"
	colBuyQty    = "buy_qty"
	colBuyPrice  = "buy_price"
	colSellQty   = "sell_qty"
	colSellPrice = "sell_price"
)

// requiredColumns must be present in every header. Quantity and price columns
// may be missing altogether; their cells are then treated as absent.
var requiredColumns = []string{colTradeDate, colClientID, colScripName}

var knownColumns = []string{colTradeDate, colClientID, colScripName, colBuyQty, colBuyPrice, colSellQty, colSellPrice}

// columnIndex maps a known column name to its position in the header (-1 when absent).
type columnIndex map[string]int

// indexHeader validates a header row and locates the known columns.
func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(knownColumns))
	for _, c := range knownColumns {
		idx[c] = -1
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if pos, ok := idx[name]; ok && pos == -1 {
			idx[name] = i
		}
	}
	for _, c := range requiredColumns {
		if idx[c] == -1 {
			return nil, report.Malformed(1, c, "", "required column missing from header")
		}
	}
	return idx, nil
}

// toRawRow picks the known cells out of one record. Short records leave the
// trailing cells absent.
func (idx columnIndex) toRawRow(line int, rec []string) models.RawRow {
	cell := func(col string) string {
		i := idx[col]
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	return models.RawRow{
		Line:      line,
		TradeDate: cell(colTradeDate),
		ClientID:  cell(colClientID),
		ScripName: cell(colScripName),
		BuyQty:    cell(colBuyQty),
		BuyPrice:  cell(colBuyPrice),
		SellQty:   cell(colSellQty),
		SellPrice: cell(colSellPrice),
	}
}

// ParseCSV reads a comma-separated ledger with a header row.
//
// It fails on:
//   - an empty input (ErrEmptyLedger)
//   - a header without trade_date, client_id or scrip_name
//   - a record with more fields than the header
//
// It tolerates:
//   - empty cells and short records (cells become absent)
//   - blank lines
func ParseCSV(ctx context.Context, r io.Reader) ([]models.RawRow, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // checked explicitly below

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyLedger
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []models.RawRow
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if len(rec) > len(header) {
			return nil, report.Malformed(line, "", "", fmt.Sprintf("expected at most %d fields, got %d", len(header), len(rec)))
		}
		rows = append(rows, idx.toRawRow(line, rec))
	}

	return rows, nil
}
