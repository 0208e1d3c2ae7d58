// Package config provides 12-factor configuration for the ChimeraOS desktop server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags in cmd/server can override the listen address and log mode.
//
// Configuration Sections:
//   - Server: HTTP listen address and shutdown grace period
//   - AI: text generation endpoint, model and credentials
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//   - Desktop: viewport size, terminal scrollback and timer intervals
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - AI_API_KEY, AI_BASE_URL, AI_MODEL, AI_TIMEOUT, AI_RETRIES
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - VIEWPORT_WIDTH, VIEWPORT_HEIGHT, SCROLLBACK, METRICS_INTERVAL, CLOCK_INTERVAL
package config
