package e2etest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockCoin is a coin served by the mock CoinRanking API
type MockCoin struct {
	UUID      string   `json:"uuid"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	IconURL   string   `json:"iconUrl"`
	Price     string   `json:"price"`
	Change    string   `json:"change"`
	Rank      int      `json:"rank"`
	MarketCap string   `json:"marketCap"`
	Volume    string   `json:"24hVolume"`
	Sparkline []string `json:"sparkline"`
}

// MockHistoryPoint is one history entry served by the mock CoinRanking API
type MockHistoryPoint struct {
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// MockServer serves the CoinRanking endpoints used by the coin browser
type MockServer struct {
	server *httptest.Server

	mu             sync.RWMutex
	coins          []MockCoin
	history        map[string][]MockHistoryPoint
	failStatus     int
	requests       map[string]int
	lastAPIKey     string
	lastTimePeriod string
}

// NewMockServer creates and starts a mock CoinRanking server
func NewMockServer() *MockServer {
	ms := &MockServer{
		coins:    defaultCoins(),
		history:  defaultHistory(),
		requests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/coins", ms.handleCoins)
	mux.HandleFunc("/v2/coin/", ms.handleHistory)
	ms.server = httptest.NewServer(mux)

	return ms
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// Close shuts the mock server down
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetCoins replaces the served coin list
func (ms *MockServer) SetCoins(coins []MockCoin) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.coins = coins
}

// SetFailStatus makes every endpoint answer with status, 0 restores normal answers
func (ms *MockServer) SetFailStatus(status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failStatus = status
}

// Requests returns how many requests hit path
func (ms *MockServer) Requests(path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requests[path]
}

// LastAPIKey returns the x-access-token header of the latest request
func (ms *MockServer) LastAPIKey() string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.lastAPIKey
}

// LastTimePeriod returns the timePeriod of the latest history request
func (ms *MockServer) LastTimePeriod() string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.lastTimePeriod
}

func (ms *MockServer) record(r *http.Request) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests[r.URL.Path]++
	ms.lastAPIKey = r.Header.Get("x-access-token")
	return ms.failStatus
}

func (ms *MockServer) handleCoins(w http.ResponseWriter, r *http.Request) {
	if status := ms.record(r); status != 0 {
		writeFailure(w, status)
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	ms.mu.RLock()
	page := make([]MockCoin, 0, limit)
	for i := offset; i < len(ms.coins) && i < offset+limit; i++ {
		page = append(page, ms.coins[i])
	}
	total := len(ms.coins)
	ms.mu.RUnlock()

	writeSuccess(w, map[string]interface{}{
		"stats": map[string]interface{}{"total": total},
		"coins": page,
	})
}

// handleHistory serves /v2/coin/{id}/history
func (ms *MockServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	if status := ms.record(r); status != 0 {
		writeFailure(w, status)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[3] != "history" {
		http.NotFound(w, r)
		return
	}
	coinID := parts[2]

	ms.mu.Lock()
	ms.lastTimePeriod = r.URL.Query().Get("timePeriod")
	points, ok := ms.history[coinID]
	ms.mu.Unlock()

	if !ok {
		writeFailure(w, http.StatusNotFound)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"change":  "1.5",
		"history": points,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

func writeFailure(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"status":"fail","type":"MOCK_FAILURE","message":"status %d"}`, status)
}

func defaultCoins() []MockCoin {
	return []MockCoin{
		{UUID: "Qwsogvtv82FCd", Symbol: "BTC", Name: "Bitcoin", Price: "65000.12", Change: "2.31", Rank: 1, MarketCap: "1280000000000", Volume: "32000000000", Sparkline: []string{"64000", "64500", "65000.12"}},
		{UUID: "razxDUgYGNAdQ", Symbol: "ETH", Name: "Ethereum", Price: "3400.5", Change: "-0.84", Rank: 2, MarketCap: "410000000000", Volume: "15000000000", Sparkline: []string{"3420", "3410", "3400.5"}},
		{UUID: "HIVsRcGKkPFtW", Symbol: "USDT", Name: "Tether USD", Price: "1.0002", Change: "0.01", Rank: 3, MarketCap: "110000000000", Volume: "50000000000", Sparkline: []string{"1", "1.0001", "1.0002"}},
		{UUID: "WcwrkfNI4FUAe", Symbol: "BNB", Name: "BNB", Price: "580.3", Change: "1.12", Rank: 4, MarketCap: "86000000000", Volume: "1200000000", Sparkline: []string{}},
		{UUID: "zNZHO_Sjf", Symbol: "SOL", Name: "Solana", Price: "150.75", Change: "5.6", Rank: 5, MarketCap: "70000000000", Volume: "2500000000", Sparkline: []string{"140", "150.75"}},
	}
}

func defaultHistory() map[string][]MockHistoryPoint {
	return map[string][]MockHistoryPoint{
		"Qwsogvtv82FCd": {
			{Price: "64000", Timestamp: 1700000000},
			{Price: "66000", Timestamp: 1700003600},
			{Price: "65000.12", Timestamp: 1700007200},
		},
		"razxDUgYGNAdQ": {
			{Price: "3420", Timestamp: 1700000000},
			{Price: "3400.5", Timestamp: 1700003600},
		},
	}
}
