package interfaces

import (
	"context"

	"github.com/status-im/coin-browser/coinranking"
)

//go:generate mockgen -destination=mocks/coin_repository.go . CoinRepository

// CoinRepository fetches coin pages and price histories
type CoinRepository interface {
	// FetchCoins returns the 1-based page of the ranked coin list
	FetchCoins(ctx context.Context, page, limit int) ([]coinranking.Coin, error)

	// FetchHistory returns the price history of a coin for a period such as "24h"
	FetchHistory(ctx context.Context, coinID string, period string) ([]coinranking.HistoryPoint, error)

	// Healthy reports whether the upstream API has answered at least once
	Healthy() bool
}
