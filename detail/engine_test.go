package detail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/coin-browser/coinranking"
	cr "github.com/status-im/coin-browser/coinranking_common"
	mock_interfaces "github.com/status-im/coin-browser/interfaces/mocks"
)

func bitcoin() coinranking.Coin {
	rank := 1
	volume := "1000000"
	marketCap := "1000000000"
	listedAt := int64(1234567890)
	btcPrice := "1.0"
	return coinranking.Coin{
		ID:        "1",
		Name:      "Bitcoin",
		Symbol:    "BTC",
		Price:     "50000",
		Change:    "5",
		Rank:      &rank,
		Volume24h: &volume,
		MarketCap: &marketCap,
		ListedAt:  &listedAt,
		BtcPrice:  &btcPrice,
		Sparkline: []string{"50000", "50500"},
	}
}

func TestEngine_FetchHistory_EmptyHistoryFallsBackToSparkline(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockCoinRepository(ctrl)
	repo.EXPECT().FetchHistory(gomock.Any(), "1", "24h").Return([]coinranking.HistoryPoint{}, nil)

	engine := NewEngine(bitcoin(), repo, false, nil, nil)
	require.NoError(t, engine.FetchHistory(context.Background(), "24h"))

	assert.Equal(t, []float64{50000.0, 50500.0}, engine.ChartData())
	assert.Empty(t, engine.ErrorMessage())
	assert.False(t, engine.IsLoading())
}

func TestEngine_FetchHistory_UsesHistoryPrices(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockCoinRepository(ctrl)
	repo.EXPECT().FetchHistory(gomock.Any(), "1", "7d").Return([]coinranking.HistoryPoint{
		{Price: "48000", Timestamp: 1},
		{Price: "52000", Timestamp: 2},
		{Price: "51000", Timestamp: 3},
	}, nil)

	engine := NewEngine(bitcoin(), repo, false, nil, nil)
	require.NoError(t, engine.FetchHistory(context.Background(), "7d"))

	assert.Equal(t, []float64{48000, 52000, 51000}, engine.ChartData())
	assert.Equal(t, coinranking.PeriodWeek, engine.SelectedPeriod())

	stats := engine.Stats()
	assert.Equal(t, 52000.0, stats.High24h)
	assert.Equal(t, 48000.0, stats.Low24h)
}

func TestEngine_FetchHistory_InvalidPeriodMakesNoCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockCoinRepository(ctrl)
	// no FetchHistory expectation: any call fails the test

	engine := NewEngine(bitcoin(), repo, false, nil, nil)
	err := engine.FetchHistory(context.Background(), "5min")

	assert.True(t, errors.Is(err, coinranking.ErrInvalidPeriod))
	assert.Equal(t, InvalidPeriodMessage, engine.ErrorMessage())
	assert.Equal(t, coinranking.DefaultPeriod, engine.SelectedPeriod())
	assert.False(t, engine.IsLoading())
}

func TestEngine_FetchHistory_FailureKeepsChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockCoinRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().FetchHistory(gomock.Any(), "1", "24h").Return([]coinranking.HistoryPoint{{Price: "1", Timestamp: 1}}, nil),
		repo.EXPECT().FetchHistory(gomock.Any(), "1", "1y").Return(nil, cr.NewServerError(500)),
	)

	engine := NewEngine(bitcoin(), repo, false, nil, nil)
	require.NoError(t, engine.FetchHistory(context.Background(), "24h"))

	err := engine.FetchHistory(context.Background(), "1y")
	require.Error(t, err)

	assert.Equal(t, []float64{1}, engine.ChartData())
	assert.Equal(t, "Server error with status code: 500", engine.ErrorMessage())
	assert.False(t, engine.IsLoading())
}

func TestEngine_FetchHistory_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockCoinRepository(ctrl)
	repo.EXPECT().FetchHistory(gomock.Any(), "1", "24h").Return(nil, errors.New("boom"))

	engine := NewEngine(bitcoin(), repo, false, nil, nil)
	assert.Error(t, engine.FetchHistory(context.Background(), "24h"))
	assert.Equal(t, "Unexpected error: boom", engine.ErrorMessage())
}

func TestEngine_FetchHistory_SuccessClearsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockCoinRepository(ctrl)
	repo.EXPECT().FetchHistory(gomock.Any(), "1", "24h").Return([]coinranking.HistoryPoint{}, nil)

	engine := NewEngine(bitcoin(), repo, false, nil, nil)
	_ = engine.FetchHistory(context.Background(), "bogus")
	require.NotEmpty(t, engine.ErrorMessage())

	require.NoError(t, engine.FetchHistory(context.Background(), "24h"))
	assert.Empty(t, engine.ErrorMessage())
}

func TestEngine_FetchHistory_LatestFetchWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockCoinRepository(ctrl)

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	repo.EXPECT().FetchHistory(gomock.Any(), "1", "1y").DoAndReturn(
		func(ctx context.Context, coinID, period string) ([]coinranking.HistoryPoint, error) {
			close(slowStarted)
			<-releaseSlow
			return []coinranking.HistoryPoint{{Price: "1", Timestamp: 1}}, nil
		})
	repo.EXPECT().FetchHistory(gomock.Any(), "1", "7d").Return([]coinranking.HistoryPoint{{Price: "2", Timestamp: 2}}, nil)

	engine := NewEngine(bitcoin(), repo, false, nil, nil)

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = engine.FetchHistory(context.Background(), "1y")
	}()

	<-slowStarted
	require.NoError(t, engine.FetchHistory(context.Background(), "7d"))
	close(releaseSlow)
	wg.Wait()

	assert.True(t, IsStale(slowErr))
	assert.Equal(t, []float64{2}, engine.ChartData())
	assert.Equal(t, coinranking.PeriodWeek, engine.SelectedPeriod())
	assert.Empty(t, engine.ErrorMessage())
}

func TestEngine_ToggleFavorite(t *testing.T) {
	var toggled []string
	favorite := true
	engine := NewEngine(bitcoin(), nil, true, func(id string) (bool, error) {
		toggled = append(toggled, id)
		favorite = !favorite
		return favorite, nil
	}, nil)

	require.NoError(t, engine.ToggleFavorite())
	assert.False(t, engine.IsFavorite())
	require.NoError(t, engine.ToggleFavorite())
	assert.True(t, engine.IsFavorite())

	assert.Equal(t, []string{"1", "1"}, toggled)
}

func TestEngine_ToggleFavorite_TakesFlagFromCallback(t *testing.T) {
	// the store already had the coin, so the toggle removes it
	engine := NewEngine(bitcoin(), nil, false, func(string) (bool, error) { return false, nil }, nil)

	require.NoError(t, engine.ToggleFavorite())
	assert.False(t, engine.IsFavorite())
}

func TestEngine_ToggleFavorite_FailureKeepsFlag(t *testing.T) {
	engine := NewEngine(bitcoin(), nil, false, func(string) (bool, error) {
		return false, errors.New("disk I/O error")
	}, nil)

	err := engine.ToggleFavorite()
	require.Error(t, err)
	assert.False(t, engine.IsFavorite())
	assert.Equal(t, "Unexpected error: disk I/O error", engine.ErrorMessage())
}

func TestEngine_ToggleFavorite_WithoutCallbackFlipsLocally(t *testing.T) {
	engine := NewEngine(bitcoin(), nil, false, nil, nil)

	require.NoError(t, engine.ToggleFavorite())
	assert.True(t, engine.IsFavorite())
}

func TestEngine_ToggleFavorite_EmptyIDIsNoop(t *testing.T) {
	called := false
	engine := NewEngine(coinranking.Coin{}, nil, false, func(string) (bool, error) {
		called = true
		return true, nil
	}, nil)

	require.NoError(t, engine.ToggleFavorite())
	assert.False(t, called)
	assert.False(t, engine.IsFavorite())
}

func TestEngine_Stats_Fallbacks(t *testing.T) {
	engine := NewEngine(coinranking.Coin{ID: "x", Sparkline: []string{}}, nil, false, nil, nil)

	stats := engine.Stats()
	assert.Equal(t, 0.0, stats.High24h)
	assert.Equal(t, 0.0, stats.Low24h)
	assert.Nil(t, stats.Rank)
	assert.Equal(t, NotAvailable, stats.Volume24h)
	assert.Equal(t, NotAvailable, stats.MarketCap)
	assert.Equal(t, NotAvailable, stats.BtcPrice)
	assert.Nil(t, stats.ListingDate)
}

func TestEngine_Stats_FromCoin(t *testing.T) {
	engine := NewEngine(bitcoin(), nil, false, nil, nil)

	stats := engine.Stats()
	assert.Equal(t, 50500.0, stats.High24h)
	assert.Equal(t, 50000.0, stats.Low24h)
	require.NotNil(t, stats.Rank)
	assert.Equal(t, 1, *stats.Rank)
	assert.Equal(t, "1000000", stats.Volume24h)
	assert.Equal(t, "1000000000", stats.MarketCap)
	assert.Equal(t, "1.0", stats.BtcPrice)
	require.NotNil(t, stats.ListingDate)
	assert.Equal(t, time.Unix(1234567890, 0).UTC(), *stats.ListingDate)
}

func TestEngine_SubscribeReceivesSnapshots(t *testing.T) {
	engine := NewEngine(bitcoin(), nil, false, nil, nil)
	sub := engine.Subscribe()
	defer sub.Cancel()

	require.NoError(t, engine.ToggleFavorite())

	select {
	case snapshot := <-sub.Chan():
		assert.True(t, snapshot.IsFavorite)
		assert.Equal(t, "Bitcoin", snapshot.Coin.Name)
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}
