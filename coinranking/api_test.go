package coinranking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cr "github.com/status-im/coin-browser/coinranking_common"
	"github.com/status-im/coin-browser/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*CoinrankingClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Coinranking.BaseURL = server.URL
	cfg.APIKey = "test-key"

	return NewCoinrankingClient(cfg, nil), server
}

func TestCoinrankingClient_FetchCoins(t *testing.T) {
	var gotPath, gotOffset, gotLimit, gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOffset = r.URL.Query().Get("offset")
		gotLimit = r.URL.Query().Get("limit")
		gotKey = r.Header.Get(cr.API_KEY_HEADER)
		_, _ = w.Write([]byte(`{"status":"success","data":{"coins":[
			{"uuid":"Qwsogvtv82FCd","name":"Bitcoin","symbol":"BTC","price":"50000","change":"5"},
			"garbage",
			42,
			{"uuid":"razxDUgYGNAdQ","name":"Ethereum","symbol":"ETH","price":"4000","change":"3"}
		]}}`))
	})

	assert.False(t, client.Healthy())

	coins, err := client.FetchCoins(context.Background(), 20, 20)
	require.NoError(t, err)

	assert.Equal(t, "/v2/coins", gotPath)
	assert.Equal(t, "20", gotOffset)
	assert.Equal(t, "20", gotLimit)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, coins, 2)
	assert.Equal(t, "Bitcoin", coins[0].Name)
	assert.Equal(t, "Ethereum", coins[1].Name)
	assert.True(t, client.Healthy())
}

func TestCoinrankingClient_FetchCoins_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":"fail","type":"RATE_LIMIT_EXCEEDED"}`))
	})

	_, err := client.FetchCoins(context.Background(), 0, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cr.ErrServer))
	assert.Equal(t, "Server error with status code: 429", err.Error())
	assert.False(t, client.Healthy())
}

func TestCoinrankingClient_FetchCoins_FailStatusWith200(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"bad"}`))
	})

	_, err := client.FetchCoins(context.Background(), 0, 20)
	assert.Equal(t, "Server error with status code: 200", err.Error())
}

func TestCoinrankingClient_FetchCoins_MalformedEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	})

	_, err := client.FetchCoins(context.Background(), 0, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cr.ErrDecodingFailed))
	assert.Contains(t, err.Error(), "Failed to parse response: ")
}

func TestCoinrankingClient_FetchHistory(t *testing.T) {
	var gotPath, gotPeriod string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPeriod = r.URL.Query().Get("timePeriod")
		_, _ = w.Write([]byte(`{"status":"success","data":{"change":"1.2","history":[
			{"price":"50000","timestamp":1700000000},
			null,
			{"price":"50500","timestamp":1700000300}
		]}}`))
	})

	points, err := client.FetchHistory(context.Background(), "Qwsogvtv82FCd", PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, "/v2/coin/Qwsogvtv82FCd/history", gotPath)
	assert.Equal(t, "7d", gotPeriod)
	assert.Equal(t, []HistoryPoint{
		{Price: "50000", Timestamp: 1700000000},
		{Price: "50500", Timestamp: 1700000300},
	}, points)
}

func TestCoinrankingClient_FetchHistory_EmptyHistory(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"change":null,"history":[]}}`))
	})

	points, err := client.FetchHistory(context.Background(), "x", DefaultPeriod)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestHistoryRequestBuilder_DefaultsAndEscaping(t *testing.T) {
	url := NewHistoryRequestBuilder("https://api.coinranking.com", "a/b").BuildURL()
	assert.Equal(t, "https://api.coinranking.com/v2/coin/a%2Fb/history?timePeriod=24h", url)
}

func TestCoinsRequestBuilder(t *testing.T) {
	url := NewCoinsRequestBuilder("https://api.coinranking.com").WithOffset(40).WithLimit(20).BuildURL()
	assert.Equal(t, "https://api.coinranking.com/v2/coins?limit=20&offset=40", url)
}
