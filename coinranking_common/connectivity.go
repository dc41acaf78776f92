package coinranking_common

import (
	"context"
	"net"
	"net/url"
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/status-im/coin-browser/config"
	"github.com/status-im/coin-browser/metrics"
	"github.com/status-im/coin-browser/scheduler"
)

const connectivityCacheKey = "connectivity"

// IConnectivityChecker reports whether the API host is believed reachable
type IConnectivityChecker interface {
	IsConnected() bool
}

// AlwaysConnected is used when probing is disabled
type AlwaysConnected struct{}

func (AlwaysConnected) IsConnected() bool { return true }

// DialFunc opens a connection, replaced in tests
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// ConnectivityMonitor probes the API host with a TCP dial and caches the
// result for CacheTTL. A background scheduler keeps the flag fresh; when the
// cached value has expired IsConnected probes synchronously.
type ConnectivityMonitor struct {
	address   string
	cfg       config.ConnectivityConfig
	cache     *gocache.Cache
	dial      DialFunc
	scheduler *scheduler.Scheduler
	probes    atomic.Int64
	logger    *zap.Logger
}

// NewConnectivityMonitor creates a monitor for the host of baseURL
func NewConnectivityMonitor(baseURL string, cfg config.ConnectivityConfig, logger *zap.Logger) *ConnectivityMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialer := &net.Dialer{Timeout: cfg.ProbeTimeout}
	m := &ConnectivityMonitor{
		address: hostPort(baseURL),
		cfg:     cfg,
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		dial:    dialer.DialContext,
		logger:  logger.Named("connectivity"),
	}
	m.scheduler = scheduler.New("connectivity", cfg.ProbeInterval, func(ctx context.Context) {
		m.probe(ctx)
	}, m.logger)
	return m
}

// SetDialFunc replaces the dialer used by probes
func (m *ConnectivityMonitor) SetDialFunc(dial DialFunc) {
	m.dial = dial
}

// Start implements core.Interface
func (m *ConnectivityMonitor) Start(ctx context.Context) error {
	m.scheduler.Start(ctx, true)
	return nil
}

// Stop implements core.Interface
func (m *ConnectivityMonitor) Stop() {
	m.scheduler.Stop()
}

// IsConnected returns the cached probe result, probing when it has expired
func (m *ConnectivityMonitor) IsConnected() bool {
	if value, found := m.cache.Get(connectivityCacheKey); found {
		if up, ok := value.(bool); ok {
			return up
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ProbeTimeout)
	defer cancel()
	return m.probe(ctx)
}

// Probes returns how many probes were run
func (m *ConnectivityMonitor) Probes() int64 {
	return m.probes.Load()
}

func (m *ConnectivityMonitor) probe(ctx context.Context) bool {
	m.probes.Add(1)

	ctx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout)
	defer cancel()

	up := true
	conn, err := m.dial(ctx, "tcp", m.address)
	if err != nil {
		up = false
		m.logger.Warn("API host unreachable", zap.String("address", m.address), zap.Error(err))
	} else {
		conn.Close()
	}

	previous, found := m.cache.Get(connectivityCacheKey)
	if found && previous != up {
		m.logger.Info("connectivity changed", zap.Bool("connected", up))
	}

	m.cache.Set(connectivityCacheKey, up, gocache.DefaultExpiration)
	metrics.RecordConnectivity(up)
	return up
}

// hostPort extracts host:port from baseURL, defaulting the port from the scheme
func hostPort(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	if u.Port() != "" {
		return u.Host
	}
	port := "443"
	if u.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(u.Hostname(), port)
}
