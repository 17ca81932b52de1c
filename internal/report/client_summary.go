package report

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tradeledger/internal/domain/models"
)

type clientAcc struct {
	summary    models.ClientSummary
	days       map[time.Time]struct{}
	scripOrder []string
	scripCount map[string]int
}

// ClientTradeSummary folds normalized trades into one lifetime summary per client.
//
// top_traded_scrip is the scrip with the most records for the client; on a tie
// the scrip encountered first in the normalized order wins. Rows are ordered
// by client_id.
func ClientTradeSummary(trades []models.Trade) []models.ClientSummary {
	accs := make(map[string]*clientAcc)

	for _, t := range trades {
		acc, ok := accs[t.ClientID]
		if !ok {
			acc = &clientAcc{
				summary:    models.ClientSummary{ClientID: t.ClientID},
				days:       make(map[time.Time]struct{}),
				scripCount: make(map[string]int),
			}
			accs[t.ClientID] = acc
		}
		s := &acc.summary
		s.TotalBuyQty = s.TotalBuyQty.Add(t.BuyQty)
		s.TotalBuyValue = s.TotalBuyValue.Add(t.BuyValue)
		s.TotalSellQty = s.TotalSellQty.Add(t.SellQty)
		s.TotalSellValue = s.TotalSellValue.Add(t.SellValue)
		acc.days[t.TradeDate] = struct{}{}

		if _, seen := acc.scripCount[t.ScripName]; !seen {
			acc.scripOrder = append(acc.scripOrder, t.ScripName)
		}
		acc.scripCount[t.ScripName]++
	}

	out := make([]models.ClientSummary, 0, len(accs))
	for _, acc := range accs {
		acc.summary.TradeDays = len(acc.days)
		acc.summary.TopTradedScrip = mostFrequent(acc.scripOrder, acc.scripCount)
		out = append(out, acc.summary)
	}
	slices.SortFunc(out, func(a, b models.ClientSummary) int {
		return strings.Compare(a.ClientID, b.ClientID)
	})
	return out
}

// mostFrequent returns the key with the highest count; order breaks ties.
func mostFrequent(order []string, counts map[string]int) string {
	t := newTally[string]()
	for _, k := range order {
		t.add(k, decimal.NewFromInt(int64(counts[k])))
	}
	if top := topKeys(t, 1); len(top) == 1 {
		return top[0]
	}
	return ""
}
