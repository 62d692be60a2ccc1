package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultUploadWindowSeconds is the fixed rate-limit window length.
	DefaultUploadWindowSeconds = 60
	// DefaultUploadLimit is the number of uploads admitted per client per window.
	DefaultUploadLimit = 50
	// DefaultMaxFileSizeBytes is the largest accepted upload (50 MiB).
	DefaultMaxFileSizeBytes = 50 * 1024 * 1024
	// DefaultCounterStore selects the backing store for upload counters.
	DefaultCounterStore = "memory"
)

// UploadConfig holds admission gate settings: the fixed-window rate limit and
// the per-file constraints enforced before persistence.
type UploadConfig struct {
	WindowSeconds int   `mapstructure:"window_seconds" rule:"min=1"`
	Limit         int   `mapstructure:"limit"          rule:"min=1"`
	MaxFileSize   int64 `mapstructure:"max_file_size"  rule:"min=1"`
	// CounterStore selects where per-client window counters live:
	// "memory" (single process) or "redis" (multi-process deployments).
	CounterStore string `mapstructure:"counter_store" rule:"oneof=memory redis"`
}

// GetWindow returns the rate-limit window as a time.Duration.
func (c *UploadConfig) GetWindow() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// setDefaults registers upload gate defaults.
func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.window_seconds", DefaultUploadWindowSeconds)
	v.SetDefault("upload.limit", DefaultUploadLimit)
	v.SetDefault("upload.max_file_size", DefaultMaxFileSizeBytes)
	v.SetDefault("upload.counter_store", DefaultCounterStore)
}
