package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/api/ws"
	"github.com/GriffinCanCode/webshell/internal/document"
	"github.com/GriffinCanCode/webshell/internal/domain/service"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/server"
	"github.com/GriffinCanCode/webshell/internal/ipc"
	"github.com/GriffinCanCode/webshell/internal/providers"
	"github.com/GriffinCanCode/webshell/internal/shared/id"
	"github.com/GriffinCanCode/webshell/web"
)

const shutdownTimeout = 5 * time.Second

// Shell owns the bridge and runs the configured mode
type Shell struct {
	config    *config.Config
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	registry  *service.Registry
	bridge    *ipc.Bridge
	newWindow WindowFactory
	out       io.Writer
}

// New creates a shell with the default providers registered
func New(cfg *config.Config, logger *logging.Logger) (*Shell, error) {
	registry, err := providers.NewRegistry(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build service registry: %w", err)
	}

	metrics := monitoring.NewMetrics()
	logger.Debug("services registered", zap.Strings("tags", registry.Tags()))

	return &Shell{
		config:    cfg,
		logger:    logger.Named("shell"),
		metrics:   metrics,
		registry:  registry,
		bridge:    ipc.NewBridge(registry, logger).WithMetrics(metrics),
		newWindow: NewNativeWindow,
		out:       os.Stdout,
	}, nil
}

// WithWindowFactory replaces the native window implementation
func (s *Shell) WithWindowFactory(factory WindowFactory) *Shell {
	s.newWindow = factory
	return s
}

// WithOutput sets where user-facing messages are printed
func (s *Shell) WithOutput(out io.Writer) *Shell {
	s.out = out
	return s
}

// Registry returns the request-tag table
func (s *Shell) Registry() *service.Registry {
	return s.registry
}

// Metrics returns the shell's metrics collector
func (s *Shell) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run blocks until the window closes, ctx ends or the headless script is done
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Trace("Run")
	s.logger.Info("Starting shell", zap.String("mode", s.config.Mode))

	switch s.config.Mode {
	case config.ModeNative:
		return s.runNative(ctx)
	case config.ModeBrowser:
		return s.runBrowser(ctx)
	case config.ModeHeadless:
		return s.runHeadless(ctx)
	default:
		return fmt.Errorf("unknown mode %q", s.config.Mode)
	}
}

// Bootstrap returns the transport script served at /host.js for mode.
// Native windows get their scripts through Init instead.
func Bootstrap(mode string) string {
	if mode != config.ModeBrowser {
		return ""
	}
	return strings.Join([]string{
		web.MustScript(web.ScriptCORS),
		web.MustScript(web.ScriptSocket),
		web.MustScript(web.ScriptInit),
	}, "\n;\n")
}

func (s *Shell) newServer(opts server.Options) *server.Server {
	opts.Bootstrap = Bootstrap(s.config.Mode)
	opts.Metrics = s.metrics
	opts.Expose = s.config.Metrics.Enabled
	return server.New(s.config.Assets, opts, s.logger)
}

func (s *Shell) closeServer(srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Close(ctx); err != nil {
		s.logger.Error("Failed to close asset server", zap.Error(err))
	}
}

func (s *Shell) runNative(ctx context.Context) error {
	srv := s.newServer(server.Options{})
	if err := srv.Start(); err != nil {
		return err
	}
	defer s.closeServer(srv)

	window, err := s.newWindow(s.config.Window.Debug)
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}
	defer window.Destroy()

	windowID := id.NewWindowID()
	logger := s.logger.With(zap.String("window_id", string(windowID)))

	window.SetTitle(s.config.Window.Title)
	window.SetSize(s.config.Window.Width, s.config.Window.Height)
	window.Init(web.MustScript(web.ScriptCORS))
	window.Init(web.MustScript(web.ScriptNative))
	window.Init(web.MustScript(web.ScriptInit))

	// bound functions run on the UI thread, which is also the only thread
	// allowed to call window.Eval
	err = window.Bind(BindingName, func(message string) {
		_ = s.bridge.Handle(ctx, message, window)
	})
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", BindingName, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("Closing window")
			window.Terminate()
		case <-done:
		}
	}()

	logger.Info("Loading from", zap.String("url", srv.URL()))
	window.Navigate(srv.URL())
	window.Run()
	return nil
}

func (s *Shell) runBrowser(ctx context.Context) error {
	loop := NewLoop(0, s.logger)
	defer loop.Close()

	handler := ws.NewHandler(s.bridge, loop, s.logger).WithMetrics(s.metrics)
	srv := s.newServer(server.Options{IPC: handler.HandleConnection})
	if err := srv.Start(); err != nil {
		return err
	}
	defer s.closeServer(srv)

	fmt.Fprintf(s.out, "Open %s in a browser\n", srv.URL())
	if s.config.Metrics.Enabled {
		fmt.Fprintf(s.out, "Metrics at http://%s%s\n", srv.Addr(), server.RouteMetrics)
	}

	<-ctx.Done()
	return nil
}

// Headless runs script in a fresh headless document wired to the bridge.
// The document is returned open so its globals can be inspected; the
// caller closes it.
func (s *Shell) Headless(ctx context.Context, script string) (*document.Document, error) {
	doc, err := document.New(document.DefaultConfig(), s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	doc.OnMessage(func(message string) {
		_ = s.bridge.Handle(ctx, message, doc)
	})

	if err := doc.Init(web.MustScript(web.ScriptInit)); err != nil {
		doc.Close()
		return nil, err
	}
	if _, err := doc.Run(ctx, script); err != nil {
		doc.Close()
		return nil, fmt.Errorf("script failed: %w", err)
	}
	return doc, nil
}

func (s *Shell) runHeadless(ctx context.Context) error {
	script := web.MustScript(web.ScriptSmoke)
	if path := s.config.Headless.Script; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		script = string(data)
	}

	doc, err := s.Headless(ctx, script)
	if err != nil {
		return err
	}
	defer doc.Close()

	for _, entry := range doc.Console() {
		fmt.Fprintf(s.out, "[%s] %s\n", entry.Level, entry.Message)
	}

	if s.config.Headless.Script != "" {
		return nil
	}

	outcome, _ := doc.Get("smoke").(map[string]interface{})
	if outcome == nil || outcome["ok"] != true {
		return fmt.Errorf("smoke script failed: %v", outcome["error"])
	}
	fmt.Fprintf(s.out, "smoke ok: %v\n", outcome["steps"])
	return nil
}
