package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Desktop   DesktopConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// AIConfig holds text generation service configuration.
// An empty APIKey leaves the assistant in fallback mode.
type AIConfig struct {
	APIKey  string        `envconfig:"AI_API_KEY"`
	BaseURL string        `envconfig:"AI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Model   string        `envconfig:"AI_MODEL" default:"gemini-2.5-flash"`
	Timeout time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	Retries int           `envconfig:"AI_RETRIES" default:"2"`
}

// Enabled reports whether a generator can be built from this config.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds the simulated desktop settings.
type DesktopConfig struct {
	ViewportWidth   int           `envconfig:"VIEWPORT_WIDTH" default:"1440"`
	ViewportHeight  int           `envconfig:"VIEWPORT_HEIGHT" default:"900"`
	Scrollback      int           `envconfig:"SCROLLBACK" default:"1000"`
	MetricsInterval time.Duration `envconfig:"METRICS_INTERVAL" default:"2s"`
	ClockInterval   time.Duration `envconfig:"CLOCK_INTERVAL" default:"1s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		AI: AIConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-2.5-flash",
			Timeout: 60 * time.Second,
			Retries: 2,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			ViewportWidth:   1440,
			ViewportHeight:  900,
			Scrollback:      1000,
			MetricsInterval: 2 * time.Second,
			ClockInterval:   time.Second,
		},
	}
}
