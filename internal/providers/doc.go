// Package providers assembles the request handlers the shell exposes to the
// document.
//
// Each subpackage is one provider: it declares its tools through Definition
// and answers them in Execute. The tool IDs are the request tags on the wire.
//
// Available Providers:
//   - System: console forwarding (console) and wall-clock time (GetTime)
//   - Greeter: user records (Greet)
//   - Counter: wrapping 32-bit arithmetic (IncrementCounter, DecrementCounter, UpdateCounter)
//
// Example Usage:
//
//	registry, err := providers.NewRegistry(logger)
//	bridge := ipc.NewBridge(registry, logger)
package providers
