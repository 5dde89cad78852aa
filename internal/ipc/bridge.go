package ipc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/monitoring"
)

// Handler answers one request type.
type Handler func(ctx context.Context, params *Params) (Result, error)

// Dispatcher resolves a request type to its handler.
type Dispatcher interface {
	Lookup(requestType string) (Handler, bool)
}

// Bridge carries out one request/response exchange per inbound message.
// It holds no per-message state and is meant to be driven from a single
// goroutine (the renderer's event thread).
type Bridge struct {
	dispatcher Dispatcher
	logger     *logging.Logger
	metrics    *monitoring.Metrics
}

// NewBridge creates a bridge over dispatcher.
func NewBridge(dispatcher Dispatcher, logger *logging.Logger) *Bridge {
	return &Bridge{
		dispatcher: dispatcher,
		logger:     logger.Named("ipc"),
	}
}

// WithMetrics attaches a metrics collector.
func (b *Bridge) WithMetrics(metrics *monitoring.Metrics) *Bridge {
	b.metrics = metrics
	return b
}

// Handle processes message and injects the response through sink. The
// returned error is informational: every failure has already been logged,
// and none of them is reported to the document.
func (b *Bridge) Handle(ctx context.Context, message string, sink Sink) error {
	resp, err := b.Process(ctx, message)
	if err != nil {
		return err
	}
	return b.Inject(resp, sink)
}

// Process decodes message, dispatches it and classifies the outcome. It
// returns ErrDecode or ErrUnknownType (wrapped) when no response is due.
func (b *Bridge) Process(ctx context.Context, message string) (*Response, error) {
	b.logger.Trace("ipc.Process")
	b.logger.Debug("ipc message", zap.String("message", message))

	req, err := DecodeRequest(message)
	if err != nil {
		b.logger.Error("fail to parse ipc request", zap.Error(err))
		b.metrics.RecordDrop(monitoring.DropDecode)
		return nil, err
	}

	handler, ok := b.dispatcher.Lookup(req.Type)
	if !ok {
		b.logger.Error("unknown ipc request type",
			zap.String("type", req.Type),
			zap.Uint64("transaction_id", req.TransactionID),
		)
		b.metrics.RecordDrop(monitoring.DropUnknownType)
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, req.Type)
	}

	timer := monitoring.NewTimer()
	result := b.invoke(ctx, req, handler)
	b.metrics.RecordIPCRequest(req.Type, string(result.Shape), timer.Elapsed())

	return &Response{
		TransactionID: req.TransactionID,
		Type:          result.Shape,
		Value:         result.Value,
	}, nil
}

// Inject encodes resp and hands the response script to sink.
func (b *Bridge) Inject(resp *Response, sink Sink) error {
	payload, err := EncodeResponse(resp)
	if err != nil {
		b.logger.Error("fail to serialize response",
			zap.Uint64("transaction_id", resp.TransactionID),
			zap.Error(err),
		)
		b.metrics.RecordDrop(monitoring.DropEncode)
		return err
	}

	script := ResponseScript(payload)
	b.logger.Debug("response script", zap.String("script", script))

	if err := sink.Eval(script); err != nil {
		b.logger.Error("fail to evaluate script",
			zap.Uint64("transaction_id", resp.TransactionID),
			zap.Error(err),
		)
		b.metrics.RecordDrop(monitoring.DropSink)
		return fmt.Errorf("%w: %v", ErrSink, err)
	}
	return nil
}

// invoke runs handler and folds every failure, including panics and
// undeclared shapes, into the Error shape.
func (b *Bridge) invoke(ctx context.Context, req *Request, handler Handler) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("ipc handler panicked",
				zap.String("type", req.Type),
				zap.Uint64("transaction_id", req.TransactionID),
				zap.Any("panic", r),
			)
			result = failed()
		}
	}()

	result, err := handler(ctx, req.Params)
	if err != nil {
		b.logger.Error("ipc handler failed",
			zap.String("type", req.Type),
			zap.Uint64("transaction_id", req.TransactionID),
			zap.Error(err),
		)
		return failed()
	}

	if !result.Shape.Valid() || result.Shape == ShapeError {
		b.logger.Error("ipc handler returned an undeclared shape",
			zap.String("type", req.Type),
			zap.String("shape", string(result.Shape)),
		)
		return failed()
	}
	return result
}
