package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultPort         = 8080      // listen port
	DefaultHost         = "0.0.0.0" // listen address
	DefaultReloadConfig = true      // enable config hot reload
	DefaultDebug        = false     // enable debug mode
	DefaultTimeout      = 30        // request timeout in seconds
	DefaultPublicURL    = ""        // externally visible base URL, empty means derive from S3 endpoint
)

type (
	// ServerConfig holds HTTP server settings.
	ServerConfig struct {
		Port         int    `mapstructure:"port"          rule:"min=1,max=65535"`
		Host         string `mapstructure:"host"          rule:"ip"`
		ReloadConfig bool   `mapstructure:"reload_config"`
		Debug        bool   `mapstructure:"debug"`
		Timeout      int    `mapstructure:"timeout"       rule:"min=1,max=300"`
		// PublicURL overrides the base URL used when building public media links.
		PublicURL string `mapstructure:"public_url"`
	}
)

// GetTimeoutDuration returns the request timeout as a time.Duration.
func (s *ServerConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// setDefaults registers server defaults.
func (s *ServerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.reload_config", DefaultReloadConfig)
	v.SetDefault("server.debug", DefaultDebug)
	v.SetDefault("server.timeout", DefaultTimeout)
	v.SetDefault("server.public_url", DefaultPublicURL)
}
