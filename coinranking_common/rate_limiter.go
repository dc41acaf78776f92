package coinranking_common

import (
	"math"

	"golang.org/x/time/rate"

	"github.com/status-im/coin-browser/config"
)

// Defaults in requests per minute, used when config is not provided.
// Keyed requests get the higher free-plan allowance.
const (
	defaultKeyedRPM = 600
	defaultNoKeyRPM = 60
)

// NewRateLimiter builds the limiter pacing API requests.
// Zero values in cfg fall back to defaults based on whether a key is used.
func NewRateLimiter(cfg config.RateLimit, hasAPIKey bool) *rate.Limiter {
	rpm := cfg.RateLimitPerMinute
	if rpm <= 0 {
		rpm = defaultNoKeyRPM
		if hasAPIKey {
			rpm = defaultKeyedRPM
		}
	}

	limit := rate.Limit(float64(rpm) / 60.0)
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
