package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"` // collect Go runtime metrics
	Pprof          bool   `mapstructure:"pprof"`           // expose /debug/pprof
}

// setDefaults registers metrics defaults.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service_name", "weddingapp")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.pprof", false)
}
