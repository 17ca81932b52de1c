package report

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/guttosm/tradeledger/internal/domain/models"
)

// dateLayouts are tried in order when parsing trade_date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// naTokens are cell values treated as absent, like a blank cell.
var naTokens = map[string]struct{}{
	"na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Decimals are validated through their float value so numeric tags (gte) apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// Report the source column name instead of the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize cleans raw ledger rows into the ordered trade set every report consumes.
//
// Behavior:
//   - Absent quantity/price cells become 0; present non-numeric or negative cells fail.
//   - Rows with buy_qty == 0 and sell_qty == 0 are dropped.
//   - Surviving rows must carry a parseable trade_date, a client_id and a scrip_name.
//   - Exact duplicates collapse to their first occurrence.
//   - The result is sorted by trade_date ascending; ties keep source order.
//
// Returns:
//   - []models.Trade: the normalized records (never nil).
//   - error: *MalformedInputError for the first offending row; nothing is returned alongside it.
func Normalize(rows []models.RawRow) ([]models.Trade, error) {
	out := make([]models.Trade, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		tr, dateErr, err := toTrade(row)
		if err != nil {
			return nil, withSource(row, err)
		}
		if err := validate.StructPartial(tr, "BuyQty", "BuyPrice", "SellQty", "SellPrice"); err != nil {
			return nil, withSource(row, validationError(row, err))
		}
		if !tr.HasActivity() {
			continue
		}
		if dateErr != nil {
			return nil, withSource(row, dateErr)
		}
		if err := validate.Struct(tr); err != nil {
			return nil, withSource(row, validationError(row, err))
		}

		key := recordKey(tr)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tr)
	}

	slices.SortStableFunc(out, func(a, b models.Trade) int {
		return a.TradeDate.Compare(b.TradeDate)
	})
	return out, nil
}

// toTrade converts the cells of one row. Date problems are returned separately
// because they only matter for rows that survive the activity filter.
func toTrade(row models.RawRow) (models.Trade, *MalformedInputError, error) {
	var (
		tr  models.Trade
		err error
	)
	tr.ClientID = strings.TrimSpace(row.ClientID)
	tr.ScripName = strings.TrimSpace(row.ScripName)

	if tr.BuyQty, err = parseAmount(row.Line, "buy_qty", row.BuyQty); err != nil {
		return tr, nil, err
	}
	if tr.BuyPrice, err = parseAmount(row.Line, "buy_price", row.BuyPrice); err != nil {
		return tr, nil, err
	}
	if tr.SellQty, err = parseAmount(row.Line, "sell_qty", row.SellQty); err != nil {
		return tr, nil, err
	}
	if tr.SellPrice, err = parseAmount(row.Line, "sell_price", row.SellPrice); err != nil {
		return tr, nil, err
	}
	tr.BuyValue = tr.BuyQty.Mul(tr.BuyPrice)
	tr.SellValue = tr.SellQty.Mul(tr.SellPrice)

	d, dateErr := parseTradeDate(row.Line, row.TradeDate)
	tr.TradeDate = d
	return tr, dateErr, nil
}

func parseAmount(line int, column, cell string) (decimal.Decimal, error) {
	s := strings.TrimSpace(cell)
	if isAbsent(s) {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, Malformed(line, column, s, "not a number")
	}
	return d, nil
}

func parseTradeDate(line int, cell string) (time.Time, *MalformedInputError) {
	s := strings.TrimSpace(cell)
	if isAbsent(s) {
		return time.Time{}, Malformed(line, "trade_date", "", "trade_date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, Malformed(line, "trade_date", s, "unparseable date")
}

func isAbsent(s string) bool {
	if s == "" {
		return true
	}
	_, ok := naTokens[strings.ToLower(s)]
	return ok
}

func validationError(row models.RawRow, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate line %d: %w", row.Line, err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return Malformed(row.Line, fe.Field(), "", fe.Field()+" is required")
	case "gte":
		return Malformed(row.Line, fe.Field(), fmt.Sprint(fe.Value()), fe.Field()+" must not be negative")
	default:
		return Malformed(row.Line, fe.Field(), fmt.Sprint(fe.Value()), "failed "+fe.Tag()+" check")
	}
}

// withSource stamps the row's source file on a MalformedInputError.
func withSource(row models.RawRow, err error) error {
	var mErr *MalformedInputError
	if row.Source != "" && errors.As(err, &mErr) && mErr.Source == "" {
		mErr.Source = row.Source
	}
	return err
}

// recordKey identifies a record by every column, derived ones included.
// decimal.String drops trailing zeros, so 10 and 10.0 compare equal.
func recordKey(t models.Trade) string {
	return strings.Join([]string{
		t.TradeDate.Format(time.DateOnly),
		t.ClientID,
		t.ScripName,
		t.BuyQty.String(),
		t.BuyPrice.String(),
		t.SellQty.String(),
		t.SellPrice.String(),
		t.BuyValue.String(),
		t.SellValue.String(),
	}, "\x1f")
}
