package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webshell/internal/ipc"
	"github.com/GriffinCanCode/webshell/internal/shared/id"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	// The server only listens on loopback; pages from any origin it serves may connect.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ErrConnectionClosed is returned by a connection sink after the socket closed.
var ErrConnectionClosed = errors.New("connection closed")

// Dispatcher runs tasks one at a time, in order
type Dispatcher interface {
	Dispatch(ctx context.Context, task func()) error
}

// Handler manages WebSocket IPC connections
type Handler struct {
	bridge   *ipc.Bridge
	loop     Dispatcher
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(bridge *ipc.Bridge, loop Dispatcher, logger *logging.Logger) *Handler {
	return &Handler{
		bridge:   bridge,
		loop:     loop,
		logger:   logger.Named("ws"),
		upgrader: upgrader,
	}
}

// WithMetrics attaches a metrics collector
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection upgrades the request and serves IPC until the peer leaves
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	sink := newConnSink(conn, id.NewConnectionID(), h.metrics)
	logger := h.logger.With(zap.String("connection_id", string(sink.id)))
	logger.Debug("connection opened")
	h.metrics.IncWSConnections()

	defer func() {
		sink.close()
		h.metrics.DecWSConnections()
		logger.Debug("connection closed")
	}()

	ctx := c.Request.Context()
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			logger.Debug("ignoring non-text frame", zap.Int("kind", kind))
			continue
		}
		h.metrics.RecordWSMessage("in")

		message := string(data)
		err = h.loop.Dispatch(ctx, func() {
			_ = h.bridge.Handle(ctx, message, sink)
		})
		if err != nil {
			logger.Error("fail to dispatch ipc message", zap.Error(err))
			return
		}
	}
}

// connSink evaluates scripts by sending them to the page as text frames
type connSink struct {
	id      id.ConnectionID
	conn    *websocket.Conn
	metrics *monitoring.Metrics

	mu     sync.Mutex
	closed bool
}

func newConnSink(conn *websocket.Conn, connID id.ConnectionID, metrics *monitoring.Metrics) *connSink {
	return &connSink{id: connID, conn: conn, metrics: metrics}
}

// Eval implements ipc.Sink
func (s *connSink) Eval(script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrConnectionClosed
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(script)); err != nil {
		return err
	}
	s.metrics.RecordWSMessage("out")
	return nil
}

func (s *connSink) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.conn.Close()
}
