package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultGracePeriodSeconds is how long after creation a guest may delete
	// their own upload without the admin password.
	DefaultGracePeriodSeconds = 5 * 60
	// DefaultTokenTTLHours is the admin session cookie lifetime.
	DefaultTokenTTLHours = 24
)

// AuthConfig holds the admin credential and session settings. AdminPassword
// doubles as the deletion credential once the grace period has passed.
type AuthConfig struct {
	AdminPassword      string `mapstructure:"admin_password" rule:"required"`
	JWTSecret          string `mapstructure:"jwt_secret"     rule:"required"`
	GracePeriodSeconds int    `mapstructure:"grace_period_seconds" rule:"min=0"`
	TokenTTLHours      int    `mapstructure:"token_ttl_hours"      rule:"min=1"`
	// SecureCookie marks the auth cookie Secure; leave off for plain-HTTP dev.
	SecureCookie bool `mapstructure:"secure_cookie"`
}

// GetGracePeriod returns the free-deletion window as a time.Duration.
func (c *AuthConfig) GetGracePeriod() time.Duration {
	return time.Duration(c.GracePeriodSeconds) * time.Second
}

// GetTokenTTL returns the admin token lifetime as a time.Duration.
func (c *AuthConfig) GetTokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// setDefaults registers auth defaults. The passwords intentionally have no
// default: the service refuses to start without them.
func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.grace_period_seconds", DefaultGracePeriodSeconds)
	v.SetDefault("auth.token_ttl_hours", DefaultTokenTTLHours)
	v.SetDefault("auth.secure_cookie", false)
}
