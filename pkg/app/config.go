package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config collects every tunable of the service. Defaults are spelled out
// here instead of being scattered through nullable request fields.
type Config struct {
	Port string `envconfig:"APP_PORT" default:"8080"`
	// DSN must carry parseTime=true so DATETIME columns scan into time.Time.
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`
	TokenSecret string `envconfig:"TOKEN_SECRET" required:"true"`

	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"30m"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`

	// Flags applied to new accounts when signup does not specify them.
	NewUserActive bool `envconfig:"NEW_USER_ACTIVE" default:"true"`
	NewUserAdmin  bool `envconfig:"NEW_USER_ADMIN" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "load configuration")
	}
	return cfg, nil
}
