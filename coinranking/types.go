package coinranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	cr "github.com/status-im/coin-browser/coinranking_common"
)

var (
	ErrInvalidPeriod     = errors.New("invalid time period")
	ErrInvalidCoinID     = errors.New("coin id is required")
	ErrInvalidPagination = errors.New("page and limit must be positive")
	ErrStaleResponse     = errors.New("response superseded by a newer request")
)

// Defaults applied when a field is missing, null or of the wrong type
const (
	DefaultCoinID     = "unknown"
	DefaultCoinName   = "Unknown Coin"
	DefaultCoinSymbol = "UNK"
	DefaultDecimal    = "0.0"
)

// Coin is a single CoinRanking coin record. Values are never mutated after decoding.
type Coin struct {
	ID        string   `json:"uuid"`
	Name      string   `json:"name"`
	Symbol    string   `json:"symbol"`
	IconURL   *string  `json:"iconUrl"`
	Price     string   `json:"price"`
	Change    string   `json:"change"`
	Rank      *int     `json:"rank"`
	Volume24h *string  `json:"24hVolume"`
	MarketCap *string  `json:"marketCap"`
	ListedAt  *int64   `json:"listedAt"`
	BtcPrice  *string  `json:"btcPrice"`
	Sparkline []string `json:"sparkline"`
}

// UnmarshalJSON decodes every field independently so that a bad field only
// falls back to its default instead of failing the record.
func (c *Coin) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("coin record is null")
	}

	*c = Coin{
		ID:        stringOr(fields["uuid"], DefaultCoinID),
		Name:      stringOr(fields["name"], DefaultCoinName),
		Symbol:    stringOr(fields["symbol"], DefaultCoinSymbol),
		IconURL:   optionalString(fields["iconUrl"]),
		Price:     stringOr(fields["price"], DefaultDecimal),
		Change:    stringOr(fields["change"], DefaultDecimal),
		Volume24h: optionalString(fields["24hVolume"]),
		MarketCap: optionalString(fields["marketCap"]),
		BtcPrice:  optionalString(fields["btcPrice"]),
		ListedAt:  optionalInt64(fields["listedAt"]),
		Sparkline: []string{},
	}

	if rank := optionalInt64(fields["rank"]); rank != nil {
		r := int(*rank)
		c.Rank = &r
	}
	if sparkline, ok := cr.LenientStrings(fields["sparkline"], DefaultDecimal); ok {
		c.Sparkline = sparkline
	}
	return nil
}

// PriceValue parses Price, returning zero when it is not a number
func (c Coin) PriceValue() decimal.Decimal {
	return parseDecimal(c.Price)
}

// ChangeValue parses Change, returning zero when it is not a number
func (c Coin) ChangeValue() decimal.Decimal {
	return parseDecimal(c.Change)
}

// SparklineValues parses every sparkline sample, unparsable samples become 0
func (c Coin) SparklineValues() []float64 {
	values := make([]float64, 0, len(c.Sparkline))
	for _, sample := range c.Sparkline {
		values = append(values, parseDecimal(sample).InexactFloat64())
	}
	return values
}

// ListingTime returns the listing date, nil when unknown
func (c Coin) ListingTime() *time.Time {
	if c.ListedAt == nil {
		return nil
	}
	t := time.Unix(*c.ListedAt, 0).UTC()
	return &t
}

func (c Coin) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
}

// HistoryPoint is a single price sample of a coin history
type HistoryPoint struct {
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

func (p *HistoryPoint) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("history record is null")
	}

	p.Price = stringOr(fields["price"], DefaultDecimal)
	p.Timestamp = 0
	if ts := optionalInt64(fields["timestamp"]); ts != nil {
		p.Timestamp = *ts
	}
	return nil
}

// Equal compares two points by timestamp and price
func (p HistoryPoint) Equal(other HistoryPoint) bool {
	return p.Timestamp == other.Timestamp && p.Price == other.Price
}

func (p HistoryPoint) PriceValue() decimal.Decimal {
	return parseDecimal(p.Price)
}

func (p HistoryPoint) Time() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

// Period is a chart time range accepted by the history endpoint
type Period string

const (
	PeriodHour        Period = "1h"
	PeriodThreeHours  Period = "3h"
	PeriodTwelveHours Period = "12h"
	PeriodDay         Period = "24h"
	PeriodWeek        Period = "7d"
	PeriodMonth       Period = "30d"
	PeriodThreeMonths Period = "3m"
	PeriodYear        Period = "1y"
	PeriodThreeYears  Period = "3y"
	PeriodFiveYears   Period = "5y"

	DefaultPeriod = PeriodDay
)

var allPeriods = []Period{
	PeriodHour, PeriodThreeHours, PeriodTwelveHours, PeriodDay, PeriodWeek,
	PeriodMonth, PeriodThreeMonths, PeriodYear, PeriodThreeYears, PeriodFiveYears,
}

// AllPeriods lists the supported periods in display order
func AllPeriods() []Period {
	return append([]Period(nil), allPeriods...)
}

// ParsePeriod validates s against the supported periods
func ParsePeriod(s string) (Period, error) {
	for _, p := range allPeriods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

func (p Period) String() string {
	return string(p)
}

func stringOr(raw json.RawMessage, fallback string) string {
	if s, ok := cr.LenientString(raw); ok {
		return s
	}
	return fallback
}

func optionalString(raw json.RawMessage) *string {
	if s, ok := cr.LenientString(raw); ok {
		return &s
	}
	return nil
}

func optionalInt64(raw json.RawMessage) *int64 {
	if v, ok := cr.LenientInt64(raw); ok {
		return &v
	}
	return nil
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
