package coinranking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	cr "github.com/status-im/coin-browser/coinranking_common"
	"github.com/status-im/coin-browser/config"
)

// Service is the coin repository: it validates arguments, checks
// connectivity and delegates to the API client. Nothing is cached.
type Service struct {
	apiClient    IAPIClient
	connectivity cr.IConnectivityChecker
	logger       *zap.Logger
}

// NewService creates a repository backed by the CoinRanking API.
// connectivity may be nil, in which case the host is assumed reachable.
func NewService(cfg *config.Config, connectivity cr.IConnectivityChecker, logger *zap.Logger) *Service {
	return NewServiceWithClient(NewCoinrankingClient(cfg, logger), connectivity, logger)
}

// NewServiceWithClient creates a repository on top of an existing client
func NewServiceWithClient(apiClient IAPIClient, connectivity cr.IConnectivityChecker, logger *zap.Logger) *Service {
	if connectivity == nil {
		connectivity = cr.AlwaysConnected{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		apiClient:    apiClient,
		connectivity: connectivity,
		logger:       logger.Named("repository"),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.apiClient == nil {
		return fmt.Errorf("api client dependency not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// FetchCoins returns page (1-based) of the ranked coin list
func (s *Service) FetchCoins(ctx context.Context, page, limit int) ([]Coin, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: page=%d limit=%d", ErrInvalidPagination, page, limit)
	}
	if !s.connectivity.IsConnected() {
		return nil, cr.NewNoConnectivityError()
	}

	offset := (page - 1) * limit
	s.logger.Debug("fetching coins", zap.Int("page", page), zap.Int("offset", offset), zap.Int("limit", limit))

	coins, err := s.apiClient.FetchCoins(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coins page %d: %w", page, err)
	}
	return coins, nil
}

// FetchHistory returns the price history of coinID over period.
// Invalid arguments are rejected before any request is made.
func (s *Service) FetchHistory(ctx context.Context, coinID string, period string) ([]HistoryPoint, error) {
	if strings.TrimSpace(coinID) == "" {
		return nil, ErrInvalidCoinID
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if !s.connectivity.IsConnected() {
		return nil, cr.NewNoConnectivityError()
	}

	s.logger.Debug("fetching history", zap.String("coin_id", coinID), zap.String("period", string(p)))

	points, err := s.apiClient.FetchHistory(ctx, coinID, p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", coinID, err)
	}
	return points, nil
}

// Healthy reports whether any request has succeeded so far
func (s *Service) Healthy() bool {
	return s.apiClient.Healthy()
}
