package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one row of a ledger source before normalization.
// Cells are kept as trimmed text; an empty cell means the value is absent.
//
// Line is the 1-based line (or spreadsheet row) the cells came from and is
// used to point error messages at the offending row. Source names the file a
// stored row was landed from; it is empty for rows read straight from a file.
type RawRow struct {
	Source    string
	Line      int
	TradeDate string
	ClientID  string
	ScripName string
	BuyQty    string
	BuyPrice  string
	SellQty   string
	SellPrice string
}

// Trade is a validated ledger record produced by the normalizer.
//
// Quantities and prices are decimals so sums and threshold comparisons are
// exact. BuyValue and SellValue are derived (qty × price) and never read
// from the source.
type Trade struct {
	TradeDate time.Time       `json:"trade_date" validate:"required"`
	ClientID  string          `json:"client_id" validate:"required"`
	ScripName string          `json:"scrip_name" validate:"required"`
	BuyQty    decimal.Decimal `json:"buy_qty" validate:"gte=0"`
	BuyPrice  decimal.Decimal `json:"buy_price" validate:"gte=0"`
	SellQty   decimal.Decimal `json:"sell_qty" validate:"gte=0"`
	SellPrice decimal.Decimal `json:"sell_price" validate:"gte=0"`
	BuyValue  decimal.Decimal `json:"buy_value"`
	SellValue decimal.Decimal `json:"sell_value"`
}

// TotalQty returns buy_qty + sell_qty.
func (t Trade) TotalQty() decimal.Decimal {
	return t.BuyQty.Add(t.SellQty)
}

// TotalValue returns buy_value + sell_value.
func (t Trade) TotalValue() decimal.Decimal {
	return t.BuyValue.Add(t.SellValue)
}

// HasActivity reports whether the record carries any traded quantity.
func (t Trade) HasActivity() bool {
	return t.BuyQty.IsPositive() || t.SellQty.IsPositive()
}
