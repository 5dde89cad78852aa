package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/api/assets"
	"github.com/GriffinCanCode/webshell/internal/api/middleware"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webshell/web"
)

// Routes served besides the embedded assets.
const (
	RouteBootstrap = "/host.js"
	RouteIPC       = "/ipc"
	RouteMetrics   = "/metrics"
)

// Options selects the mode-specific parts of the server
type Options struct {
	// Bootstrap is served at RouteBootstrap.
	Bootstrap string
	// IPC, when set, is mounted at RouteIPC.
	IPC gin.HandlerFunc
	// Metrics exposes the registry at RouteMetrics when Expose is set.
	Metrics *monitoring.Metrics
	Expose  bool
}

// Server is the loopback HTTP server the document is loaded from
type Server struct {
	router   *gin.Engine
	http     *http.Server
	listener net.Listener
	config   config.AssetsConfig
	logger   *logging.Logger
}

// New creates the server. Nothing listens until Start.
func New(cfg config.AssetsConfig, opts Options, logger *logging.Logger) *Server {
	logger = logger.Named("server")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(opts.Metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	responder := assets.NewResponder(web.Static(), logger)
	bootstrap := responder.Script(opts.Bootstrap)
	router.GET(RouteBootstrap, bootstrap)
	router.HEAD(RouteBootstrap, bootstrap)

	if opts.IPC != nil {
		router.GET(RouteIPC, opts.IPC)
	}
	if opts.Expose && opts.Metrics != nil {
		router.GET(RouteMetrics, gin.WrapH(opts.Metrics.Handler()))
	}

	router.NoRoute(responder.Serve)

	return &Server{
		router: router,
		http:   &http.Server{Handler: router},
		config: cfg,
		logger: logger,
	}
}

// Router exposes the engine, for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.logger.Info("Starting asset server", zap.String("addr", listener.Addr().String()))

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("asset server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address; empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the entry document URL
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/" + s.config.Entry
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	s.logger.Info("Shutting down asset server...")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down asset server: %w", err)
	}
	return nil
}
