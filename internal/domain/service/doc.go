// Package service maps IPC request tags to provider handlers.
//
// A Registry is assembled once from a fixed set of providers and never
// changes afterwards, so lookups need no locking. Each provider declares its
// tools through Definition; every tool ID is a request tag on the wire.
//
// Example Usage:
//
//	registry, err := service.NewRegistry(system.NewProvider(logger), greeter.NewProvider())
//	bridge := ipc.NewBridge(registry, logger)
package service
