/*
Package monitoring provides Prometheus metrics for the desktop server.

# Overview

Metrics tracks HTTP traffic, window lifecycle operations, VFS mutations,
terminal commands, text generation calls and WebSocket connections. Every
instance owns a private registry so that constructing two servers in one
process never panics on duplicate registration.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordWindowOp("launch", 3)

	timer := monitoring.NewTimer(metrics, "ask")
	// ... call the generator ...
	timer.Stop("ok")
*/
package monitoring
