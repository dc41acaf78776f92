package coinranking

import (
	"fmt"
	"net/url"
	"strconv"

	cr "github.com/status-im/coin-browser/coinranking_common"
)

const (
	COINS_API_PATH            = "/v2/coins"
	HISTORY_API_PATH_TEMPLATE = "/v2/coin/%s/history"
)

// CoinsRequestBuilder builds GET /v2/coins requests
type CoinsRequestBuilder struct {
	*cr.CoinrankingRequestBuilder
}

func NewCoinsRequestBuilder(baseURL string) *CoinsRequestBuilder {
	return &CoinsRequestBuilder{
		CoinrankingRequestBuilder: cr.NewCoinrankingRequestBuilder(baseURL, COINS_API_PATH),
	}
}

func (rb *CoinsRequestBuilder) WithOffset(offset int) *CoinsRequestBuilder {
	rb.With("offset", strconv.Itoa(offset))
	return rb
}

func (rb *CoinsRequestBuilder) WithLimit(limit int) *CoinsRequestBuilder {
	rb.With("limit", strconv.Itoa(limit))
	return rb
}

// HistoryRequestBuilder builds GET /v2/coin/{id}/history requests
type HistoryRequestBuilder struct {
	*cr.CoinrankingRequestBuilder
	coinID string
}

func NewHistoryRequestBuilder(baseURL, coinID string) *HistoryRequestBuilder {
	apiPath := fmt.Sprintf(HISTORY_API_PATH_TEMPLATE, url.PathEscape(coinID))

	rb := &HistoryRequestBuilder{
		CoinrankingRequestBuilder: cr.NewCoinrankingRequestBuilder(baseURL, apiPath),
		coinID:                    coinID,
	}
	rb.WithTimePeriod(DefaultPeriod)

	return rb
}

func (rb *HistoryRequestBuilder) WithTimePeriod(period Period) *HistoryRequestBuilder {
	rb.With("timePeriod", string(period))
	return rb
}
