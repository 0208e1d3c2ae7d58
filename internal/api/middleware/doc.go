// Package middleware provides the HTTP middleware stack of the desktop
// server.
//
//   - CORS: cross-origin access for the browser front end, WebSocket
//     upgrades included
//   - RateLimit: per-IP token buckets with idle eviction
//   - RequestID: request ids and one access log line per request
//
// Example Usage:
//
//	router.Use(middleware.RequestID(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
