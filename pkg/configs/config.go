// Package configs manages the application configuration: server, storage,
// upload limits, admin auth and logging. Multiple formats are supported
// (YAML, JSON, TOML, dotenv) and hot reload can be enabled.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion is reported to storage backends and health endpoints.
const AppVersion = "1.0.0"

type (
	// AppConfig is the global application configuration.
	AppConfig struct {
		DB        DBConfig             `mapstructure:"db"`         // caption record store
		S3        S3Config             `mapstructure:"s3"`         // media blob store
		KV        KVConfig             `mapstructure:"kv"`         // listing cache
		Upload    UploadConfig         `mapstructure:"upload"`     // admission gate limits
		Auth      AuthConfig           `mapstructure:"auth"`       // admin password / deletion secret
		Server    ServerConfig         `mapstructure:"server"`     // host, port, debug
		RateLimit RateLimitConfig      `mapstructure:"rate_limit"` // optional global transport limiter
		Breaker   CircuitBreakerConfig `mapstructure:"breaker"`    // optional circuit breaker
		Metrics   MetricsConfig        `mapstructure:"metrics"`
		Log       LogConfig            `mapstructure:"log"`
	}
)

var (
	// globalConfig is the process-wide configuration instance.
	globalConfig AppConfig
	// appViper is the global viper instance backing it.
	appViper *viper.Viper
)

// InitConfig loads the application configuration from a file or directory,
// applying defaults first and enabling hot reload when configured.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	// path may be a concrete file or a directory holding config.<ext>
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("WEDDINGAPP")

	if err := appViper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults registers default values for every config section.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig    ServerConfig
		dbConfig        DBConfig
		s3Config        S3Config
		kvConfig        KVConfig
		uploadConfig    UploadConfig
		authConfig      AuthConfig
		rateLimitConfig RateLimitConfig
		breakerConfig   CircuitBreakerConfig
		metricsConfig   MetricsConfig
		logConfig       LogConfig
	)

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	kvConfig.setDefaults(v)
	uploadConfig.setDefaults(v)
	authConfig.setDefaults(v)
	rateLimitConfig.setDefaults(v)
	breakerConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	logConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig returns the global configuration instance.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}
