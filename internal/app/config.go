package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the till.
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr   string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	StorePrefix string `envconfig:"STORE_PREFIX" default:"standkas"`

	MaxAccounts int `envconfig:"MAX_ACCOUNTS" default:"50"`

	AdminIdleTimeout time.Duration `envconfig:"ADMIN_IDLE_TIMEOUT" default:"5m"`
	AdminLockFails   int           `envconfig:"ADMIN_LOCK_MAX_FAILS" default:"5"`
	AdminLockWindow  time.Duration `envconfig:"ADMIN_LOCK_DURATION" default:"2m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
