// Package ws carries IPC over a WebSocket for browser mode.
//
// The document sends request envelopes as text frames. The host answers
// with text frames whose payload is a script for the document to evaluate
// in its global scope, the same script a native window would receive
// through its evaluation sink.
//
// Inbound frames from every connection are funnelled through one event
// loop, so the bridge runs on a single goroutine whatever the number of
// open tabs.
//
// Example Usage:
//
//	handler := ws.NewHandler(bridge, loop, logger).WithMetrics(metrics)
//	router.GET("/ipc", handler.HandleConnection)
package ws
