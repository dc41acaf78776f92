package coinranking_common

import (
	"time"

	"github.com/status-im/coin-browser/metrics"
)

// HttpRequestMetricsWriter implements IHttpStatusHandler by writing to metrics
type HttpRequestMetricsWriter struct {
	writer *metrics.MetricsWriter
}

// NewHttpRequestMetricsWriter creates a new metrics writer for the given service
func NewHttpRequestMetricsWriter(serviceName string) *HttpRequestMetricsWriter {
	return &HttpRequestMetricsWriter{
		writer: metrics.NewMetricsWriter(serviceName),
	}
}

// OnRequest records an HTTP request with its status and latency
func (h *HttpRequestMetricsWriter) OnRequest(status string, duration time.Duration) {
	h.writer.OnRequest(status, duration)
}
