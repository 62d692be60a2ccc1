package configs

import "github.com/spf13/viper"

const (
	// Global transport-level limiter defaults. Disabled by default: the upload
	// endpoint has its own fixed-window gate.
	DefaultRateLimitEnabled = false
	DefaultRateLimitRPS     = 50.0
	DefaultRateLimitBurst   = 100
	DefaultRateLimitKey     = "ip"
)

// RateLimitConfig configures the optional global request limiter applied in
// front of every route. This is separate from the upload admission gate.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`   // allowed requests per second
	Burst   int     `mapstructure:"burst"` // burst capacity
	// Key selects the limiter dimension: global, ip, or header:Header-Name.
	Key string `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
	v.SetDefault("rate_limit.key", DefaultRateLimitKey)
}
