package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientSummary is the lifetime summary of a single client.
type ClientSummary struct {
	ClientID       string
	TotalBuyQty    decimal.Decimal
	TotalBuyValue  decimal.Decimal
	TotalSellQty   decimal.Decimal
	TotalSellValue decimal.Decimal
	TradeDays      int
	TopTradedScrip string
}

// DailySummary holds market-wide totals for one trade date.
type DailySummary struct {
	TradeDate      time.Time
	TotalBuyQty    decimal.Decimal
	TotalBuyValue  decimal.Decimal
	TotalSellQty   decimal.Decimal
	TotalSellValue decimal.Decimal
	UniqueClients  int
	Top5Clients    []string
	Top5Scrips     []string
}

// ClientValue ranks a client by its summed buy_value + sell_value.
type ClientValue struct {
	ClientID        string
	TotalTradeValue decimal.Decimal
}

// ScripQuantity ranks a scrip by its summed buy_qty + sell_qty.
type ScripQuantity struct {
	ScripName string
	TotalQty  decimal.Decimal
}

// ScripValue ranks a scrip by its summed buy_value + sell_value.
type ScripValue struct {
	ScripName  string
	TotalValue decimal.Decimal
}

// ValueDistribution is a descriptive statistics block over trade values.
// With Count == 0 every other field is zero; Std is zero when Count < 2.
type ValueDistribution struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// ActivityCategory classifies how often a client trades.
type ActivityCategory string

const (
	ActivityActive   ActivityCategory = "Active"
	ActivityModerate ActivityCategory = "Moderate"
	ActivityDormant  ActivityCategory = "Dormant"
)

// ClientActivity is the weekly-activity classification of one client.
type ClientActivity struct {
	ClientID        string
	AvgWeeklyTrades float64
	Category        ActivityCategory
}

// ManagementReport is the dataset-wide management digest.
type ManagementReport struct {
	TopClients                   []ClientValue
	TopScripsByQuantity          []ScripQuantity
	TopScripsByValue             []ScripValue
	BuyValueDistribution         ValueDistribution
	SellValueDistribution        ValueDistribution
	ClientActivityCategorization []ClientActivity
}

// HighFrequencyClient flags a client whose trade count on one date exceeded the threshold.
type HighFrequencyClient struct {
	ClientID   string
	TradeDate  time.Time
	TradeCount int
}

// AnomalyReport lists outsized trades and high-frequency client days.
type AnomalyReport struct {
	HighValueTrades      []Trade
	HighFrequencyClients []HighFrequencyClient
}

// FullReport bundles the four reports computed over the same normalized snapshot.
type FullReport struct {
	ClientSummaries []ClientSummary
	DailySummaries  []DailySummary
	Management      ManagementReport
	Anomalies       AnomalyReport
}
