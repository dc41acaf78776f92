package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	COINRANKING_BASE_URL = "https://api.coinranking.com"
)

// CoinrankingFetcher defines configuration for the CoinRanking API client
type CoinrankingFetcher struct {
	BaseURL string `yaml:"base_url"`

	// ConnectionTimeout bounds establishing the TCP/TLS connection
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`

	// RequestTimeout bounds the whole request including reading the body
	RequestTimeout time.Duration `yaml:"request_timeout"`

	RateLimit RateLimit `yaml:"rate_limit"`

	// UserAgent sent with every request
	UserAgent string `yaml:"user_agent"`
}

// RateLimit represents a simple rpm + burst pair
type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst"`
}

func (c *CoinrankingFetcher) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = COINRANKING_BASE_URL
	}
	if c.ConnectionTimeout <= 0 {
		c.ConnectionTimeout = 10 * time.Second
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "coin-browser/1.0"
	}
}

// Validate validates the CoinrankingFetcher configuration
func (c *CoinrankingFetcher) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q must be absolute", c.BaseURL)
	}
	if c.RateLimit.RateLimitPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	return nil
}
