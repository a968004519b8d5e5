package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the whole externally visible configuration surface. The API
// origin is the one setting that matters; everything else is ambient.
type Config struct {
	// APIBase selects the remote API origin.
	APIBase string `env:"PAIRPRO_API_BASE, default=https://pairpro-backend-vyh1.onrender.com"`

	// RequestTimeout bounds every API request (project convention 10-15 s).
	RequestTimeout time.Duration `env:"PAIRPRO_TIMEOUT, default=10s"`

	// TokenFile overrides the default session-credential location.
	TokenFile string `env:"PAIRPRO_TOKEN_FILE"`

	// UploadBase overrides the media-host endpoint (tests, staging).
	UploadBase string `env:"PAIRPRO_UPLOAD_BASE"`

	LogLevel string `env:"LOG_LEVEL, default=info"`

	// LogFile receives structured logs; the terminal UI owns stdout, so
	// logging to it would corrupt the screen. Empty discards logs.
	LogFile string `env:"PAIRPRO_LOG_FILE"`

	// MetricsAddr exposes Prometheus metrics when non-empty, e.g. ":9187".
	MetricsAddr string `env:"METRICS_ADDR"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
