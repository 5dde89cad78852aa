package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/shell"
)

func init() {
	// native windows must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		fmt.Println("Usage: webshell [flags]")
		fmt.Print(config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "webshell: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "webshell: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Trace("main()")

	s, err := shell.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to create shell", zap.Error(err))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil {
		logger.Error("Shell stopped with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "webshell: %v\n", err)
		stop()
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("Shell stopped")
}
