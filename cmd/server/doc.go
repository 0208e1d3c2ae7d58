// Package main is the entry point for the ChimeraOS desktop backend.
//
// The server keeps the whole simulated desktop in memory: window
// registry, file system, app views and settings. The front end drives it
// through the JSON API and follows changes over the /stream WebSocket.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	AI_API_KEY=... ./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Without AI_API_KEY the assistant answers with fallback replies.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
