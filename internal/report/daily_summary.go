package report

import (
	"slices"
	"time"

	"github.com/guttosm/tradeledger/internal/domain/models"
)

type dayAcc struct {
	summary models.DailySummary
	clients *tally[string] // buy_value + sell_value per client
	scrips  *tally[string] // buy_qty + sell_qty per scrip
}

// DailySummary folds normalized trades into one market summary per trade date,
// ordered by date ascending.
//
// top_5_clients ranks clients by that day's buy_value + sell_value and
// top_5_scrips ranks scrips by that day's total quantity. Both are capped at
// opts.DailyTopN and break ties by first appearance within the day.
func DailySummary(trades []models.Trade, opts Options) []models.DailySummary {
	accs := make(map[time.Time]*dayAcc)
	var order []time.Time

	for _, t := range trades {
		acc, ok := accs[t.TradeDate]
		if !ok {
			acc = &dayAcc{
				summary: models.DailySummary{TradeDate: t.TradeDate},
				clients: newTally[string](),
				scrips:  newTally[string](),
			}
			accs[t.TradeDate] = acc
			order = append(order, t.TradeDate)
		}
		s := &acc.summary
		s.TotalBuyQty = s.TotalBuyQty.Add(t.BuyQty)
		s.TotalBuyValue = s.TotalBuyValue.Add(t.BuyValue)
		s.TotalSellQty = s.TotalSellQty.Add(t.SellQty)
		s.TotalSellValue = s.TotalSellValue.Add(t.SellValue)
		acc.clients.add(t.ClientID, t.TotalValue())
		acc.scrips.add(t.ScripName, t.TotalQty())
	}

	// Input is normally date-sorted already; sorting keeps the contract for any caller.
	slices.SortFunc(order, func(a, b time.Time) int { return a.Compare(b) })

	out := make([]models.DailySummary, 0, len(order))
	for _, d := range order {
		acc := accs[d]
		acc.summary.UniqueClients = len(acc.clients.keys)
		acc.summary.Top5Clients = topKeys(acc.clients, opts.DailyTopN)
		acc.summary.Top5Scrips = topKeys(acc.scrips, opts.DailyTopN)
		out = append(out, acc.summary)
	}
	return out
}
