package dto

import (
	"github.com/guttosm/tradeledger/internal/domain/models"
)

// DateLayout is the wire format of every trade_date field.
const DateLayout = "2006-01-02"

// TradeResponse is one normalized ledger record.
type TradeResponse struct {
	TradeDate string  `json:"trade_date" example:"2024-01-02"`
	ClientID  string  `json:"client_id" example:"C001"`
	ScripName string  `json:"scrip_name" example:"ACME"`
	BuyQty    float64 `json:"buy_qty" example:"100"`
	BuyPrice  float64 `json:"buy_price" example:"60000"`
	SellQty   float64 `json:"sell_qty" example:"0"`
	SellPrice float64 `json:"sell_price" example:"0"`
	BuyValue  float64 `json:"buy_value" example:"6000000"`
	SellValue float64 `json:"sell_value" example:"0"`
}

// ClientSummaryResponse is one row of the client trade summary.
type ClientSummaryResponse struct {
	ClientID       string  `json:"client_id" example:"C001"`
	TotalBuyQty    float64 `json:"total_buy_qty" example:"150"`
	TotalBuyValue  float64 `json:"total_buy_value" example:"15000"`
	TotalSellQty   float64 `json:"total_sell_qty" example:"50"`
	TotalSellValue float64 `json:"total_sell_value" example:"5250"`
	TradeDays      int     `json:"trade_days" example:"2"`
	TopTradedScrip string  `json:"top_traded_scrip" example:"ACME"`
}

// DailySummaryResponse is one row of the daily summary.
type DailySummaryResponse struct {
	TradeDate      string   `json:"trade_date" example:"2024-01-02"`
	TotalBuyQty    float64  `json:"total_buy_qty" example:"150"`
	TotalBuyValue  float64  `json:"total_buy_value" example:"15000"`
	TotalSellQty   float64  `json:"total_sell_qty" example:"50"`
	TotalSellValue float64  `json:"total_sell_value" example:"5250"`
	UniqueClients  int      `json:"unique_clients" example:"2"`
	Top5Clients    []string `json:"top_5_clients"`
	Top5Scrips     []string `json:"top_5_scrips"`
}

// ClientValueResponse ranks a client by combined buy and sell value.
type ClientValueResponse struct {
	ClientID        string  `json:"client_id"`
	TotalTradeValue float64 `json:"total_trade_value"`
}

// ScripQuantityResponse ranks a scrip by shares bought plus sold.
type ScripQuantityResponse struct {
	ScripName string  `json:"scrip_name"`
	TotalQty  float64 `json:"total_qty"`
}

// ScripValueResponse ranks a scrip by combined buy and sell value.
type ScripValueResponse struct {
	ScripName  string  `json:"scrip_name"`
	TotalValue float64 `json:"total_value"`
}

// DistributionResponse uses the conventional describe() keys.
type DistributionResponse struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// ClientActivityResponse places a client in an activity band by average
// trades per week over the ledger's span.
type ClientActivityResponse struct {
	ClientID        string  `json:"client_id"`
	AvgWeeklyTrades float64 `json:"avg_weekly_trades"`
	Category        string  `json:"category" enums:"Active,Moderate,Dormant"`
}

// ManagementReportResponse is the management digest.
type ManagementReportResponse struct {
	TopClients                   []ClientValueResponse    `json:"top_clients"`
	TopScripsByQuantity          []ScripQuantityResponse  `json:"top_scrips_by_quantity"`
	TopScripsByValue             []ScripValueResponse     `json:"top_scrips_by_value"`
	BuyValueDistribution         DistributionResponse     `json:"buy_value_distribution"`
	SellValueDistribution        DistributionResponse     `json:"sell_value_distribution"`
	ClientActivityCategorization []ClientActivityResponse `json:"client_activity_categorization"`
}

// HighFrequencyClientResponse is a client day with more trades than the
// high-frequency threshold.
type HighFrequencyClientResponse struct {
	ClientID   string `json:"client_id"`
	TradeDate  string `json:"trade_date"`
	TradeCount int    `json:"trade_count"`
}

// AnomalyReportResponse lists outsized trades and high-frequency client days.
type AnomalyReportResponse struct {
	HighValueTrades      []TradeResponse               `json:"high_value_trades"`
	HighFrequencyClients []HighFrequencyClientResponse `json:"high_frequency_clients"`
}

// FullReportResponse bundles the four reports computed from one ledger snapshot.
type FullReportResponse struct {
	ClientSummary    []ClientSummaryResponse  `json:"client_summary"`
	DailySummary     []DailySummaryResponse   `json:"daily_summary"`
	ManagementReport ManagementReportResponse `json:"management_report"`
	Anomalies        AnomalyReportResponse    `json:"anomalies"`
}

// ─── Mappers ────────────────────────────────────────────────────────────────
//
// Collections are always non-nil so empty results encode as [] rather than null.

// NewTradeResponse renders one normalized trade with its computed values.
func NewTradeResponse(t models.Trade) TradeResponse {
	return TradeResponse{
		TradeDate: t.TradeDate.Format(DateLayout),
		ClientID:  t.ClientID,
		ScripName: t.ScripName,
		BuyQty:    t.BuyQty.InexactFloat64(),
		BuyPrice:  t.BuyPrice.InexactFloat64(),
		SellQty:   t.SellQty.InexactFloat64(),
		SellPrice: t.SellPrice.InexactFloat64(),
		BuyValue:  t.BuyValue.InexactFloat64(),
		SellValue: t.SellValue.InexactFloat64(),
	}
}

// NewClientSummaryResponse maps the client summary, keeping its order.
func NewClientSummaryResponse(rows []models.ClientSummary) []ClientSummaryResponse {
	out := make([]ClientSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ClientSummaryResponse{
			ClientID:       r.ClientID,
			TotalBuyQty:    r.TotalBuyQty.InexactFloat64(),
			TotalBuyValue:  r.TotalBuyValue.InexactFloat64(),
			TotalSellQty:   r.TotalSellQty.InexactFloat64(),
			TotalSellValue: r.TotalSellValue.InexactFloat64(),
			TradeDays:      r.TradeDays,
			TopTradedScrip: r.TopTradedScrip,
		})
	}
	return out
}

// NewDailySummaryResponse maps the daily summary. Top-5 lists are never null.
func NewDailySummaryResponse(rows []models.DailySummary) []DailySummaryResponse {
	out := make([]DailySummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, DailySummaryResponse{
			TradeDate:      r.TradeDate.Format(DateLayout),
			TotalBuyQty:    r.TotalBuyQty.InexactFloat64(),
			TotalBuyValue:  r.TotalBuyValue.InexactFloat64(),
			TotalSellQty:   r.TotalSellQty.InexactFloat64(),
			TotalSellValue: r.TotalSellValue.InexactFloat64(),
			UniqueClients:  r.UniqueClients,
			Top5Clients:    nonNil(r.Top5Clients),
			Top5Scrips:     nonNil(r.Top5Scrips),
		})
	}
	return out
}

// NewManagementReportResponse maps the management digest, including its
// rankings, value distributions and activity bands.
func NewManagementReportResponse(m models.ManagementReport) ManagementReportResponse {
	resp := ManagementReportResponse{
		TopClients:                   make([]ClientValueResponse, 0, len(m.TopClients)),
		TopScripsByQuantity:          make([]ScripQuantityResponse, 0, len(m.TopScripsByQuantity)),
		TopScripsByValue:             make([]ScripValueResponse, 0, len(m.TopScripsByValue)),
		BuyValueDistribution:         newDistribution(m.BuyValueDistribution),
		SellValueDistribution:        newDistribution(m.SellValueDistribution),
		ClientActivityCategorization: make([]ClientActivityResponse, 0, len(m.ClientActivityCategorization)),
	}
	for _, c := range m.TopClients {
		resp.TopClients = append(resp.TopClients, ClientValueResponse{ClientID: c.ClientID, TotalTradeValue: c.TotalTradeValue.InexactFloat64()})
	}
	for _, s := range m.TopScripsByQuantity {
		resp.TopScripsByQuantity = append(resp.TopScripsByQuantity, ScripQuantityResponse{ScripName: s.ScripName, TotalQty: s.TotalQty.InexactFloat64()})
	}
	for _, s := range m.TopScripsByValue {
		resp.TopScripsByValue = append(resp.TopScripsByValue, ScripValueResponse{ScripName: s.ScripName, TotalValue: s.TotalValue.InexactFloat64()})
	}
	for _, a := range m.ClientActivityCategorization {
		resp.ClientActivityCategorization = append(resp.ClientActivityCategorization, ClientActivityResponse{
			ClientID:        a.ClientID,
			AvgWeeklyTrades: a.AvgWeeklyTrades,
			Category:        string(a.Category),
		})
	}
	return resp
}

// NewAnomalyReportResponse maps both anomaly lists, formatting client days
// with DateLayout.
func NewAnomalyReportResponse(a models.AnomalyReport) AnomalyReportResponse {
	resp := AnomalyReportResponse{
		HighValueTrades:      make([]TradeResponse, 0, len(a.HighValueTrades)),
		HighFrequencyClients: make([]HighFrequencyClientResponse, 0, len(a.HighFrequencyClients)),
	}
	for _, t := range a.HighValueTrades {
		resp.HighValueTrades = append(resp.HighValueTrades, NewTradeResponse(t))
	}
	for _, h := range a.HighFrequencyClients {
		resp.HighFrequencyClients = append(resp.HighFrequencyClients, HighFrequencyClientResponse{
			ClientID:   h.ClientID,
			TradeDate:  h.TradeDate.Format(DateLayout),
			TradeCount: h.TradeCount,
		})
	}
	return resp
}

// NewFullReportResponse maps each of the four reports with its own mapper.
func NewFullReportResponse(f models.FullReport) FullReportResponse {
	return FullReportResponse{
		ClientSummary:    NewClientSummaryResponse(f.ClientSummaries),
		DailySummary:     NewDailySummaryResponse(f.DailySummaries),
		ManagementReport: NewManagementReportResponse(f.Management),
		Anomalies:        NewAnomalyReportResponse(f.Anomalies),
	}
}

func newDistribution(d models.ValueDistribution) DistributionResponse {
	return DistributionResponse{
		Count:  d.Count,
		Mean:   d.Mean,
		Std:    d.Std,
		Min:    d.Min,
		Q25:    d.Q25,
		Median: d.Median,
		Q75:    d.Q75,
		Max:    d.Max,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
