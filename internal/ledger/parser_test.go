package ledger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/guttosm/tradeledger/internal/domain/models"
	"github.com/guttosm/tradeledger/internal/report"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []models.RawRow
		wantKind report.ErrorKind
		wantErr  error
	}{
		{
			name: "canonical header",
			input: "trade_date,client_id,scrip_name,buy_qty,buy_price,sell_qty,sell_price\n" +
				"2024-01-02,C1,ACME,10,100.5,,\n",
			want: []models.RawRow{
				{Line: 2, TradeDate: "2024-01-02", ClientID: "C1", ScripName: "ACME", BuyQty: "10", BuyPrice: "100.5"},
			},
		},
		{
			name: "header in any order and case",
			input: "Scrip_Name, CLIENT_ID ,sell_qty,Trade_Date,sell_price\n" +
				"ACME,C2,3,2024-01-03,7\n",
			want: []models.RawRow{
				{Line: 2, TradeDate: "2024-01-03", ClientID: "C2", ScripName: "ACME", SellQty: "3", SellPrice: "7"},
			},
		},
		{
			name: "byte order mark before the header",
			input: "\ufefftrade_date,client_id,scrip_name,buy_qty,buy_price\n" +
				"2024-01-02,C1,ACME,1,2\n",
			want: []models.RawRow{
				{Line: 2, TradeDate: "2024-01-02", ClientID: "C1", ScripName: "ACME", BuyQty: "1", BuyPrice: "2"},
			},
		},
		{
			name: "short record leaves trailing cells absent",
			input: "trade_date,client_id,scrip_name,buy_qty,buy_price\n" +
				"2024-01-02,C1\n",
			want: []models.RawRow{
				{Line: 2, TradeDate: "2024-01-02", ClientID: "C1"},
			},
		},
		{
			name: "blank lines are skipped",
			input: "trade_date,client_id,scrip_name\n\n" +
				"2024-01-02,C1,ACME\n\n",
			want: []models.RawRow{
				{Line: 3, TradeDate: "2024-01-02", ClientID: "C1", ScripName: "ACME"},
			},
		},
		{
			name:  "header only",
			input: "trade_date,client_id,scrip_name\n",
			want:  nil,
		},
		{
			name:     "missing required column",
			input:    "trade_date,scrip_name\n2024-01-02,ACME\n",
			wantKind: report.KindMalformedInput,
		},
		{
			name:     "record longer than header",
			input:    "trade_date,client_id,scrip_name\n2024-01-02,C1,ACME,extra\n",
			wantKind: report.KindMalformedInput,
		},
		{
			name:     "empty input",
			input:    "",
			wantErr:  ErrEmptyLedger,
			wantKind: report.KindMissingInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(context.Background(), strings.NewReader(tt.input))
			if tt.wantKind != "" || tt.wantErr != nil {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.True(t, errors.Is(err, tt.wantErr))
				}
				assert.Equal(t, tt.wantKind, report.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCSV_MissingColumnNamesColumn(t *testing.T) {
	_, err := ParseCSV(context.Background(), strings.NewReader("trade_date,client_id\n"))

	var mErr *report.MalformedInputError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "scrip_name", mErr.Column)
}

func TestParseCSV_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseCSV(ctx, strings.NewReader("trade_date,client_id,scrip_name\n2024-01-02,C1,ACME\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

// workbook builds an in-memory .xlsx with the given rows on its first sheet.
func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseXLSX(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Trade_Date", "Client_ID", "Scrip_Name", "Buy_Qty", "Buy_Price"},
		{"2024-01-02", "C1", "ACME", "10", "100"},
		{},
		{"2024-01-03", "C2", "BETA"},
	})

	got, err := ParseXLSX(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, []models.RawRow{
		{Line: 2, TradeDate: "2024-01-02", ClientID: "C1", ScripName: "ACME", BuyQty: "10", BuyPrice: "100"},
		{Line: 4, TradeDate: "2024-01-03", ClientID: "C2", ScripName: "BETA"},
	}, got)
}

func TestParseXLSX_DateAndNumberCells(t *testing.T) {
	buf := workbook(t, [][]any{
		{"trade_date", "client_id", "scrip_name", "buy_qty", "buy_price"},
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "C1", "ACME", 10, 100.5},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "C2", "BETA", 3, 7},
	})

	got, err := ParseXLSX(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, []models.RawRow{
		{Line: 2, TradeDate: "2024-01-02", ClientID: "C1", ScripName: "ACME", BuyQty: "10", BuyPrice: "100.5"},
		{Line: 3, TradeDate: "2024-02-29", ClientID: "C2", ScripName: "BETA", BuyQty: "3", BuyPrice: "7"},
	}, got)

	trades, err := report.Normalize(got)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), trades[0].TradeDate)
}

func TestSerialToDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45293", "2024-01-02"},
		{"45293.5", "2024-01-02"},
		{"2024-01-02", "2024-01-02"},
		{"yesterday", "yesterday"},
		{"", ""},
		{"-3", "-3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, serialToDate(tt.in, false), tt.in)
	}
}

func TestParseXLSX_MissingRequiredColumn(t *testing.T) {
	buf := workbook(t, [][]any{
		{"trade_date", "scrip_name"},
		{"2024-01-02", "ACME"},
	})

	_, err := ParseXLSX(context.Background(), buf)
	assert.Equal(t, report.KindMalformedInput, report.KindOf(err))
}

func TestParseXLSX_EmptySheet(t *testing.T) {
	buf := workbook(t, nil)

	_, err := ParseXLSX(context.Background(), buf)
	assert.ErrorIs(t, err, ErrEmptyLedger)
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := ParseXLSX(context.Background(), strings.NewReader("trade_date,client_id\n"))
	require.Error(t, err)
	assert.Empty(t, report.KindOf(err))
}
