package report

import "github.com/shopspring/decimal"

// Options holds the thresholds and list sizes used by the aggregators.
type Options struct {
	DailyTopN              int             // length cap of top_5_clients / top_5_scrips
	TopN                   int             // length cap of the management rankings
	HighValueThreshold     decimal.Decimal // buy or sell value strictly above this is outsized
	HighFrequencyThreshold int             // trades per client per day strictly above this is high frequency
	ActiveWeeklyTrades     float64         // avg weekly trades at or above this is Active
	ModerateWeeklyTrades   float64         // avg weekly trades at or above this is Moderate
	DormancyWindowDays     int             // no trade within this many days of the dataset's last date forces Dormant
}

// DefaultOptions returns the standard report thresholds.
func DefaultOptions() Options {
	return Options{
		DailyTopN:              5,
		TopN:                   10,
		HighValueThreshold:     decimal.NewFromInt(5_000_000),
		HighFrequencyThreshold: 20,
		ActiveWeeklyTrades:     5,
		ModerateWeeklyTrades:   1,
		DormancyWindowDays:     30,
	}
}
