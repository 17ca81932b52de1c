package report

import (
	"slices"
	"strings"
	"time"

	"github.com/guttosm/tradeledger/internal/domain/models"
)

// ManagementReport computes the dataset-wide digest: top clients and scrips,
// buy/sell value distributions and client activity categories.
func ManagementReport(trades []models.Trade, opts Options) models.ManagementReport {
	clients := newTally[string]()
	scripQty := newTally[string]()
	scripValue := newTally[string]()
	var buyValues, sellValues []float64

	for _, t := range trades {
		clients.add(t.ClientID, t.TotalValue())
		scripQty.add(t.ScripName, t.TotalQty())
		scripValue.add(t.ScripName, t.TotalValue())

		// Zero sides are left out so they don't distort the distribution.
		if t.BuyValue.IsPositive() {
			buyValues = append(buyValues, t.BuyValue.InexactFloat64())
		}
		if t.SellValue.IsPositive() {
			sellValues = append(sellValues, t.SellValue.InexactFloat64())
		}
	}

	rep := models.ManagementReport{
		TopClients:                   []models.ClientValue{},
		TopScripsByQuantity:          []models.ScripQuantity{},
		TopScripsByValue:             []models.ScripValue{},
		BuyValueDistribution:         describe(buyValues),
		SellValueDistribution:        describe(sellValues),
		ClientActivityCategorization: ClassifyActivity(trades, opts),
	}
	for _, r := range clients.top(opts.TopN) {
		rep.TopClients = append(rep.TopClients, models.ClientValue{ClientID: r.key, TotalTradeValue: r.value})
	}
	for _, r := range scripQty.top(opts.TopN) {
		rep.TopScripsByQuantity = append(rep.TopScripsByQuantity, models.ScripQuantity{ScripName: r.key, TotalQty: r.value})
	}
	for _, r := range scripValue.top(opts.TopN) {
		rep.TopScripsByValue = append(rep.TopScripsByValue, models.ScripValue{ScripName: r.key, TotalValue: r.value})
	}
	return rep
}

type weekKey struct {
	client string
	week   time.Time
}

// ClassifyActivity buckets each client's trades into Monday-anchored weeks and
// averages the count over the weeks the client actually traded in.
//
// A client with no trade on or after (last dataset date − DormancyWindowDays)
// is Dormant whatever its average. The cutoff comes from the dataset, not the
// wall clock, so a stale dataset still classifies its own final month as recent.
func ClassifyActivity(trades []models.Trade, opts Options) []models.ClientActivity {
	if len(trades) == 0 {
		return []models.ClientActivity{}
	}

	weekly := make(map[weekKey]int)
	weeksPerClient := make(map[string]int)
	tradesPerClient := make(map[string]int)
	lastTrade := make(map[string]time.Time)
	var maxDate time.Time

	for _, t := range trades {
		k := weekKey{client: t.ClientID, week: weekStart(t.TradeDate)}
		if weekly[k] == 0 {
			weeksPerClient[t.ClientID]++
		}
		weekly[k]++
		tradesPerClient[t.ClientID]++
		if t.TradeDate.After(lastTrade[t.ClientID]) {
			lastTrade[t.ClientID] = t.TradeDate
		}
		if t.TradeDate.After(maxDate) {
			maxDate = t.TradeDate
		}
	}

	cutoff := dormancyCutoff(maxDate, opts.DormancyWindowDays)

	out := make([]models.ClientActivity, 0, len(tradesPerClient))
	for client, n := range tradesPerClient {
		avg := float64(n) / float64(weeksPerClient[client])
		cat := categorize(avg, opts)
		if lastTrade[client].Before(cutoff) {
			cat = models.ActivityDormant
		}
		out = append(out, models.ClientActivity{ClientID: client, AvgWeeklyTrades: avg, Category: cat})
	}
	slices.SortFunc(out, func(a, b models.ClientActivity) int {
		return strings.Compare(a.ClientID, b.ClientID)
	})
	return out
}

func categorize(avg float64, opts Options) models.ActivityCategory {
	switch {
	case avg >= opts.ActiveWeeklyTrades:
		return models.ActivityActive
	case avg >= opts.ModerateWeeklyTrades:
		return models.ActivityModerate
	default:
		return models.ActivityDormant
	}
}
