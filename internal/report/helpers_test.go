package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/tradeledger/internal/domain/models"
)

// raw builds a row with buy and sell cells; empty strings stay absent.
func raw(date, client, scrip, buyQty, buyPrice, sellQty, sellPrice string) models.RawRow {
	return models.RawRow{
		TradeDate: date,
		ClientID:  client,
		ScripName: scrip,
		BuyQty:    buyQty,
		BuyPrice:  buyPrice,
		SellQty:   sellQty,
		SellPrice: sellPrice,
	}
}

func buy(date, client, scrip, qty, price string) models.RawRow {
	return raw(date, client, scrip, qty, price, "", "")
}

func sell(date, client, scrip, qty, price string) models.RawRow {
	return raw(date, client, scrip, "", "", qty, price)
}

func mustNormalize(t *testing.T, rows ...models.RawRow) []models.Trade {
	t.Helper()
	for i := range rows {
		rows[i].Line = i + 2
	}
	trades, err := Normalize(rows)
	require.NoError(t, err)
	return trades
}
