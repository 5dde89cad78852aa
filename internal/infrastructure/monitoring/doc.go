/*
Package monitoring provides metrics collection for the shell.

# Overview

This package implements Prometheus-based metrics for the IPC bridge, the
loopback asset server and the WebSocket transport. Every Metrics value owns
its own registry so that several shells (or tests) can coexist in a process.

# Features

- IPC request metrics (type, result shape, handler latency)
- Dropped message counts by reason (decode, unknown_type, encode, sink)
- Asset request metrics (method, status, latency)
- WebSocket connection and message metrics

# Usage

	metrics := monitoring.NewMetrics()
	bridge := ipc.NewBridge(registry, logger).WithMetrics(metrics)
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
