package report

import (
	"slices"
	"strings"
	"time"

	"github.com/guttosm/tradeledger/internal/domain/models"
)

type clientDay struct {
	client string
	date   time.Time
}

// AnomalyReport flags outsized trades and high-frequency client days.
//
// A trade is outsized when buy_value or sell_value is strictly greater than
// opts.HighValueThreshold; such trades keep normalized order. A (client, date)
// pair is high frequency when its record count is strictly greater than
// opts.HighFrequencyThreshold; pairs are ordered by client_id then date.
// Nothing is ranked or truncated.
func AnomalyReport(trades []models.Trade, opts Options) models.AnomalyReport {
	rep := models.AnomalyReport{
		HighValueTrades:      []models.Trade{},
		HighFrequencyClients: []models.HighFrequencyClient{},
	}

	counts := make(map[clientDay]int)
	for _, t := range trades {
		if t.BuyValue.GreaterThan(opts.HighValueThreshold) || t.SellValue.GreaterThan(opts.HighValueThreshold) {
			rep.HighValueTrades = append(rep.HighValueTrades, t)
		}
		counts[clientDay{client: t.ClientID, date: t.TradeDate}]++
	}

	for k, n := range counts {
		if n > opts.HighFrequencyThreshold {
			rep.HighFrequencyClients = append(rep.HighFrequencyClients, models.HighFrequencyClient{
				ClientID:   k.client,
				TradeDate:  k.date,
				TradeCount: n,
			})
		}
	}
	slices.SortFunc(rep.HighFrequencyClients, func(a, b models.HighFrequencyClient) int {
		if c := strings.Compare(a.ClientID, b.ClientID); c != 0 {
			return c
		}
		return a.TradeDate.Compare(b.TradeDate)
	})
	return rep
}
