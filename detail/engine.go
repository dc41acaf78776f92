package detail

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/status-im/coin-browser/coinranking"
	cr "github.com/status-im/coin-browser/coinranking_common"
	"github.com/status-im/coin-browser/events"
	"github.com/status-im/coin-browser/interfaces"
	"github.com/status-im/coin-browser/metrics"
)

const InvalidPeriodMessage = "Invalid time period selected"

// ToggleFunc is called with the coin id whenever the detail screen toggles
// its favorite flag
type ToggleFunc func(coinID string) (bool, error)

// Snapshot is a consistent copy of the detail state
type Snapshot struct {
	Coin           coinranking.Coin           `json:"coin"`
	SelectedPeriod coinranking.Period         `json:"selectedPeriod"`
	History        []coinranking.HistoryPoint `json:"history"`
	ChartData      []float64                  `json:"chartData"`
	IsLoading      bool                       `json:"isLoading"`
	ErrorMessage   string                     `json:"errorMessage"`
	IsFavorite     bool                       `json:"isFavorite"`
	Stats          Stats                      `json:"stats"`
}

// Engine holds the state of one coin's detail screen.
// Only the most recently started history fetch may update the state.
type Engine struct {
	mu           sync.Mutex
	coin         coinranking.Coin
	repo         interfaces.CoinRepository
	period       coinranking.Period
	history      []coinranking.HistoryPoint
	chart        []float64
	loading      bool
	errorMessage string
	favorite     bool
	toggle       ToggleFunc
	seq          uint64

	subs   *events.SubscriptionManager[Snapshot]
	logger *zap.Logger
}

func NewEngine(coin coinranking.Coin, repo interfaces.CoinRepository, isFavorite bool, toggle ToggleFunc, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		coin:     coin,
		repo:     repo,
		period:   coinranking.DefaultPeriod,
		history:  []coinranking.HistoryPoint{},
		chart:    []float64{},
		favorite: isFavorite,
		toggle:   toggle,
		subs:     events.NewSubscriptionManager[Snapshot](),
		logger:   logger.Named("detail").With(zap.String("coin_id", coin.ID)),
	}
}

// FetchHistory loads the history for period and derives the chart from it.
// An invalid period is rejected without a request and keeps the selected
// period. On failure the previous chart stays in place.
func (e *Engine) FetchHistory(ctx context.Context, period string) error {
	p, err := coinranking.ParsePeriod(period)
	if err != nil {
		e.mu.Lock()
		e.errorMessage = InvalidPeriodMessage
		e.mu.Unlock()
		e.logger.Warn("rejected history period", zap.String("period", period))
		e.notify()
		return err
	}

	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.loading = true
	e.period = p
	e.mu.Unlock()
	e.notify()

	e.logger.Debug("fetching history", zap.String("period", string(p)))
	history, err := e.repo.FetchHistory(ctx, e.coin.ID, string(p))

	e.mu.Lock()
	if seq != e.seq {
		e.mu.Unlock()
		e.logger.Debug("discarding superseded history response", zap.String("period", string(p)))
		metrics.RecordStaleResponse("detail")
		return coinranking.ErrStaleResponse
	}
	e.loading = false

	if err != nil {
		e.errorMessage = cr.MessageFor(err)
		e.mu.Unlock()
		e.logger.Warn("failed to fetch history", zap.String("period", string(p)), zap.Error(err))
		e.notify()
		return err
	}

	e.history = append([]coinranking.HistoryPoint(nil), history...)
	e.chart = chartSeries(e.coin, e.history)
	e.errorMessage = ""
	e.mu.Unlock()

	e.notify()
	return nil
}

// ToggleFavorite forwards the coin id to the toggle callback and takes the
// favorite flag from its result. A failed toggle keeps the flag. Without a
// callback only the local flag flips.
func (e *Engine) ToggleFavorite() error {
	if e.coin.ID == "" {
		return nil
	}

	if e.toggle == nil {
		e.mu.Lock()
		e.favorite = !e.favorite
		e.mu.Unlock()
		e.notify()
		return nil
	}

	favorite, err := e.toggle(e.coin.ID)
	if err != nil {
		e.mu.Lock()
		e.errorMessage = cr.MessageFor(err)
		e.mu.Unlock()
		e.logger.Warn("failed to toggle favorite", zap.Error(err))
		e.notify()
		return err
	}

	e.mu.Lock()
	e.favorite = favorite
	e.mu.Unlock()
	e.logger.Debug("toggled favorite", zap.Bool("favorite", favorite))
	e.notify()
	return nil
}

func (e *Engine) Coin() coinranking.Coin {
	return e.coin
}

func (e *Engine) ChartData() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]float64(nil), e.chart...)
}

func (e *Engine) History() []coinranking.HistoryPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]coinranking.HistoryPoint(nil), e.history...)
}

func (e *Engine) ErrorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorMessage
}

func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

func (e *Engine) SelectedPeriod() coinranking.Period {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.period
}

func (e *Engine) IsFavorite() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.favorite
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return computeStats(e.coin, e.history)
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Coin:           e.coin,
		SelectedPeriod: e.period,
		History:        append([]coinranking.HistoryPoint(nil), e.history...),
		ChartData:      append([]float64(nil), e.chart...),
		IsLoading:      e.loading,
		ErrorMessage:   e.errorMessage,
		IsFavorite:     e.favorite,
		Stats:          computeStats(e.coin, e.history),
	}
}

// Subscribe notifies with a snapshot after every state change
func (e *Engine) Subscribe() events.ISubscription[Snapshot] {
	return e.subs.Subscribe()
}

func (e *Engine) notify() {
	e.subs.Emit(context.Background(), e.Snapshot())
}

// IsStale reports whether err only means a newer fetch took over
func IsStale(err error) bool {
	return errors.Is(err, coinranking.ErrStaleResponse)
}

func chartSeries(coin coinranking.Coin, history []coinranking.HistoryPoint) []float64 {
	if len(history) == 0 {
		return coin.SparklineValues()
	}
	chart := make([]float64, 0, len(history))
	for _, point := range history {
		chart = append(chart, point.PriceValue().InexactFloat64())
	}
	return chart
}
