// Package logging provides structured logging using uber/zap.
//
// The shell logs through a single process-wide Logger built at startup from
// the command line. Two output modes are supported:
//   - Console: human readable lines on stderr, coloured levels in development
//   - File: JSON lines appended to the path given with --log-file
//
// Log Levels:
//   - off: nothing is written
//   - error, warn, info, debug: the usual zap levels
//   - trace: a custom level below debug, used for function entry records
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "debug"})
//	logger.Info("Loading from", zap.String("url", url))
//	logger.Trace("ipc.Process")
package logging
