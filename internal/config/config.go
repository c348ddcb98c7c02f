package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the runtime configuration for the auth API.
type Config struct {
	ServiceName   string `env:"SERVICE_NAME"   envDefault:"enemamar-api"`
	ServerHost    string `env:"SERVER_HOST"    envDefault:"0.0.0.0"`
	ServerPort    int    `env:"SERVER_PORT"    envDefault:"8000"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"enemamar"`

	// ConsulAddress is optional; when empty the service skips registration.
	ConsulAddress string `env:"CONSUL_ADDRESS"`

	Token TokenConfig `envPrefix:"TOKEN_"`
}

// TokenConfig holds the signing configuration for password reset tokens.
type TokenConfig struct {
	Issuer                      string        `env:"ISSUER"                    envDefault:"enemamar-api"`
	PasswordResetTokenSecret    string        `env:"PASSWORD_RESET_SECRET"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_EXPIRES_IN" envDefault:"10m"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.Token.PasswordResetTokenSecret == "" {
		return fmt.Errorf("missing TOKEN_PASSWORD_RESET_SECRET environment variable")
	}

	return nil
}
