package configs

import (
	"github.com/spf13/viper"
)

// CircuitBreakerConfig guards the HTTP surface against cascading failures
// when a storage backend goes down. Off by default.
type CircuitBreakerConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	MaxRequestsInHalf uint32  `mapstructure:"max_requests_in_half" rule:"min=1"`
	IntervalSeconds   int     `mapstructure:"interval_seconds"     rule:"min=1"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"      rule:"min=1"`
	MinRequests       uint32  `mapstructure:"min_requests"         rule:"min=1"`
	FailureRate       float64 `mapstructure:"failure_rate"         rule:"gt=0,lte=1"`
}

// setDefaults registers circuit breaker defaults.
func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("breaker.enabled", false)
	v.SetDefault("breaker.max_requests_in_half", 5)
	v.SetDefault("breaker.interval_seconds", 60)
	v.SetDefault("breaker.timeout_seconds", 30)
	v.SetDefault("breaker.min_requests", 10)
	v.SetDefault("breaker.failure_rate", 0.5)
}
