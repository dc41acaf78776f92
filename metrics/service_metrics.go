package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "coin_browser_"

// Service constants
const (
	ServiceCoins   = "coins"
	ServiceHistory = "history"
)

var (
	// Global CoinRanking request counter (all services)
	// Cardinality: ~7 (success + one per error kind)
	CoinrankingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coinranking_requests_total",
			Help: "Total number of HTTP requests to the CoinRanking API across all services",
		},
		[]string{"status"},
	)

	// Service-specific CoinRanking request counter
	// Cardinality: ~14 (2 services × 7 statuses)
	ServiceCoinrankingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_coinranking_requests_total",
			Help: "Total number of HTTP requests to the CoinRanking API per service",
		},
		[]string{"service", "status"},
	)

	// Request latency per service
	// Cardinality: ~2 (number of services)
	RequestLatencyHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "request_latency_seconds",
			Help: "CoinRanking request latency by service",
		},
		[]string{"service"},
	)

	// Coins accumulated by the listing engine
	ListingCoinsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "listing_coins",
			Help: "Number of coins accumulated by the listing engine",
		},
	)

	// Favorite coin ids
	FavoritesGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "favorites",
			Help: "Number of coins marked as favorite",
		},
	)

	// Responses dropped because a newer fetch superseded them
	StaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "stale_responses_total",
			Help: "Fetch results discarded because a newer request superseded them",
		},
		[]string{"engine"},
	)

	// Connectivity probe result, 1 when reachable
	ConnectivityGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "connectivity_up",
			Help: "Whether the last connectivity probe reached the API host",
		},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordServiceCoinrankingRequest records a service-specific CoinRanking API request
func (mw *MetricsWriter) RecordServiceCoinrankingRequest(status string) {
	CoinrankingRequestsTotal.WithLabelValues(status).Inc()
	ServiceCoinrankingRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordRequestLatency records how long a request took
func (mw *MetricsWriter) RecordRequestLatency(duration time.Duration) {
	RequestLatencyHistogram.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
}

// OnRequest implements coinranking_common.IHttpStatusHandler
func (mw *MetricsWriter) OnRequest(status string, duration time.Duration) {
	mw.RecordServiceCoinrankingRequest(status)
	mw.RecordRequestLatency(duration)
}

// RecordListingSize records the number of accumulated coins
func RecordListingSize(size int) {
	ListingCoinsGauge.Set(float64(size))
}

// RecordFavoritesCount records the number of favorite ids
func RecordFavoritesCount(count int) {
	FavoritesGauge.Set(float64(count))
}

// RecordStaleResponse records a discarded response for an engine
func RecordStaleResponse(engine string) {
	StaleResponsesTotal.WithLabelValues(engine).Inc()
}

// RecordConnectivity records the last probe outcome
func RecordConnectivity(up bool) {
	if up {
		ConnectivityGauge.Set(1)
		return
	}
	ConnectivityGauge.Set(0)
}
