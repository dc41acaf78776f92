package detail

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/status-im/coin-browser/coinranking"
)

// NotAvailable is shown for coin fields the API did not return
const NotAvailable = "N/A"

// Stats are the figures shown next to the chart
type Stats struct {
	High24h     float64    `json:"high24h"`
	Low24h      float64    `json:"low24h"`
	Rank        *int       `json:"rank,omitempty"`
	Volume24h   string     `json:"volume24h"`
	MarketCap   string     `json:"marketCap"`
	BtcPrice    string     `json:"btcPrice"`
	ListingDate *time.Time `json:"listingDate,omitempty"`
}

// computeStats takes high and low from history prices, falling back to the
// sparkline and then to zero
func computeStats(coin coinranking.Coin, history []coinranking.HistoryPoint) Stats {
	prices := make(stats.Float64Data, 0, len(history))
	for _, point := range history {
		prices = append(prices, point.PriceValue().InexactFloat64())
	}
	if len(prices) == 0 {
		prices = coin.SparklineValues()
	}

	result := Stats{
		Rank:        coin.Rank,
		Volume24h:   orNotAvailable(coin.Volume24h),
		MarketCap:   orNotAvailable(coin.MarketCap),
		BtcPrice:    orNotAvailable(coin.BtcPrice),
		ListingDate: coin.ListingTime(),
	}
	if high, err := stats.Max(prices); err == nil {
		result.High24h = high
	}
	if low, err := stats.Min(prices); err == nil {
		result.Low24h = low
	}
	return result
}

func orNotAvailable(value *string) string {
	if value == nil {
		return NotAvailable
	}
	return *value
}
