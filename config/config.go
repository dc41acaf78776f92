package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Coinranking  CoinrankingFetcher `yaml:"coinranking"`
	Connectivity ConnectivityConfig `yaml:"connectivity"`
	Listing      ListingConfig      `yaml:"listing"`
	Favorites    FavoritesConfig    `yaml:"favorites"`
	Server       ServerConfig       `yaml:"server"`
	LogLevel     string             `yaml:"log_level"`
	EnvFile      string             `yaml:"env_file"`

	// APIKey is never read from yaml, see LoadAPIKey
	APIKey string `yaml:"-"`
}

// ListingConfig configures the coin listing engine
type ListingConfig struct {
	PageSize int `yaml:"page_size"`
	// AutoRefreshInterval refreshes the listing periodically in serve mode, 0 disables it
	AutoRefreshInterval time.Duration `yaml:"auto_refresh_interval"`
}

// FavoritesConfig configures where favorite coin ids are kept.
// An empty SQLitePath keeps favorites in memory only.
type FavoritesConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

const (
	DefaultPageSize = 20
	DefaultPort     = "8080"
	DefaultLogLevel = "info"
)

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads path and applies defaults. A missing or unreadable API key
// is logged and the API is used without authentication.
func LoadConfig(path string, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	apiKey, err := LoadAPIKey(config.EnvFile)
	if err != nil {
		logger.Warn("error loading CoinRanking API key, using API without authentication", zap.Error(err))
	} else {
		config.APIKey = apiKey
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	c.Coinranking.applyDefaults()
	c.Connectivity.applyDefaults()

	if c.Listing.PageSize <= 0 {
		c.Listing.PageSize = DefaultPageSize
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks values that have no sensible default
func (c *Config) Validate() error {
	if err := c.Coinranking.Validate(); err != nil {
		return fmt.Errorf("coinranking: %w", err)
	}
	if c.Listing.AutoRefreshInterval < 0 {
		return fmt.Errorf("listing: auto_refresh_interval must not be negative")
	}
	return nil
}
