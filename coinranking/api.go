package coinranking

import (
	"bytes"
	"context"
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	cr "github.com/status-im/coin-browser/coinranking_common"
	"github.com/status-im/coin-browser/config"
	"github.com/status-im/coin-browser/metrics"
)

type IAPIClient interface {
	FetchCoins(ctx context.Context, offset, limit int) ([]Coin, error)
	FetchHistory(ctx context.Context, coinID string, period Period) ([]HistoryPoint, error)
	Healthy() bool
}

type coinsData struct {
	Coins []json.RawMessage `json:"coins"`
}

type historyData struct {
	Change  *string           `json:"change"`
	History []json.RawMessage `json:"history"`
}

// CoinrankingClient talks to the CoinRanking REST API
type CoinrankingClient struct {
	config          *config.Config
	coinsClient     *cr.HTTPClient
	historyClient   *cr.HTTPClient
	successfulFetch atomic.Bool
	logger          *zap.Logger
}

// NewCoinrankingClient creates a client sharing one rate limiter between endpoints
func NewCoinrankingClient(cfg *config.Config, logger *zap.Logger) *CoinrankingClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("coinranking")

	opts := cr.ClientOptions{
		ConnectionTimeout: cfg.Coinranking.ConnectionTimeout,
		RequestTimeout:    cfg.Coinranking.RequestTimeout,
	}
	limiter := cr.NewRateLimiter(cfg.Coinranking.RateLimit, cfg.APIKey != "")

	return &CoinrankingClient{
		config:        cfg,
		coinsClient:   cr.NewHTTPClient(opts, cr.NewHttpRequestMetricsWriter(metrics.ServiceCoins), limiter, logger),
		historyClient: cr.NewHTTPClient(opts, cr.NewHttpRequestMetricsWriter(metrics.ServiceHistory), limiter, logger),
		logger:        logger,
	}
}

func (c *CoinrankingClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchCoins fetches one page of coins. Records that are not JSON objects
// are skipped, they never fail the page.
func (c *CoinrankingClient) FetchCoins(ctx context.Context, offset, limit int) ([]Coin, error) {
	req, err := NewCoinsRequestBuilder(c.config.Coinranking.BaseURL).
		WithOffset(offset).
		WithLimit(limit).
		WithApiKey(c.config.APIKey).
		WithUserAgent(c.config.Coinranking.UserAgent).
		Build(ctx)
	if err != nil {
		return nil, cr.ClassifyError(err)
	}

	body, statusCode, _, err := c.coinsClient.ExecuteRequest(req)
	if err != nil {
		return nil, err
	}

	data, err := cr.DecodeEnvelope[coinsData](body, statusCode)
	if err != nil {
		c.logger.Warn("failed to decode coins response", zap.Error(err))
		return nil, err
	}

	coins := make([]Coin, 0, len(data.Coins))
	for i, raw := range data.Coins {
		var coin Coin
		if !isObject(raw) {
			c.logger.Warn("skipping coin record that is not an object", zap.Int("index", i))
			continue
		}
		if err := json.Unmarshal(raw, &coin); err != nil {
			c.logger.Warn("skipping undecodable coin record", zap.Int("index", i), zap.Error(err))
			continue
		}
		coins = append(coins, coin)
	}

	c.logger.Debug("fetched coins",
		zap.Int("offset", offset),
		zap.Int("limit", limit),
		zap.Int("count", len(coins)))
	c.successfulFetch.Store(true)

	return coins, nil
}

// FetchHistory fetches the price history of coinID over period
func (c *CoinrankingClient) FetchHistory(ctx context.Context, coinID string, period Period) ([]HistoryPoint, error) {
	req, err := NewHistoryRequestBuilder(c.config.Coinranking.BaseURL, coinID).
		WithTimePeriod(period).
		WithApiKey(c.config.APIKey).
		WithUserAgent(c.config.Coinranking.UserAgent).
		Build(ctx)
	if err != nil {
		return nil, cr.ClassifyError(err)
	}

	body, statusCode, _, err := c.historyClient.ExecuteRequest(req)
	if err != nil {
		return nil, err
	}

	data, err := cr.DecodeEnvelope[historyData](body, statusCode)
	if err != nil {
		c.logger.Warn("failed to decode history response", zap.String("coin_id", coinID), zap.Error(err))
		return nil, err
	}

	points := make([]HistoryPoint, 0, len(data.History))
	for i, raw := range data.History {
		var point HistoryPoint
		if !isObject(raw) {
			c.logger.Warn("skipping history record that is not an object", zap.Int("index", i))
			continue
		}
		if err := json.Unmarshal(raw, &point); err != nil {
			c.logger.Warn("skipping undecodable history record", zap.Int("index", i), zap.Error(err))
			continue
		}
		points = append(points, point)
	}

	c.logger.Debug("fetched history",
		zap.String("coin_id", coinID),
		zap.String("period", string(period)),
		zap.Int("count", len(points)))
	c.successfulFetch.Store(true)

	return points, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
