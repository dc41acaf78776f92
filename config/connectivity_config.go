package config

import "time"

// ConnectivityConfig configures the reachability probe guarding API calls
type ConnectivityConfig struct {
	// ProbeInterval is how often the background probe runs
	ProbeInterval time.Duration `yaml:"probe_interval"`
	// ProbeTimeout bounds a single dial
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	// CacheTTL is how long a probe result is trusted
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// Disabled skips probing and always reports connected
	Disabled bool `yaml:"disabled"`
}

func (c *ConnectivityConfig) applyDefaults() {
	if c.ProbeInterval <= 0 {
		c.ProbeInterval = 15 * time.Second
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = 3 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 30 * time.Second
	}
}
