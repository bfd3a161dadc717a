package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config carries everything the binary needs from its environment. The
// store path is handed explicitly to the store constructor; there is no
// process-wide default.
type Config struct {
	// StorePath is the JSON backing file for the catalog.
	StorePath string `env:"VIDCAT_STORE_PATH" envDefault:"videos.json"`

	// ListenAddr is the address the interactive interface serves on.
	ListenAddr string `env:"VIDCAT_LISTEN_ADDR" envDefault:":8080"`

	LogLevel       string   `env:"VIDCAT_LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"VIDCAT_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// New reads configuration from the environment, loading a .env file first
// when one is present.
func New() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
