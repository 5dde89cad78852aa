package system

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/ipc"
	"github.com/GriffinCanCode/webshell/internal/shared/types"
)

// Request tags answered by the system provider.
const (
	TagConsole = "console"
	TagGetTime = "GetTime"
)

// TimeLayout renders wall-clock time as "YYYY-MM-DD HH:MM:SS UTC".
const TimeLayout = "2006-01-02 15:04:05 UTC"

// Provider forwards document console output to the host log and reads the clock
type Provider struct {
	logger   *logging.Logger
	document *logging.Logger
	now      func() time.Time
}

// NewProvider creates a system provider
func NewProvider(logger *logging.Logger) *Provider {
	return &Provider{
		logger:   logger.Named("system"),
		document: logger.Named("document"),
		now:      time.Now,
	}
}

// WithClock replaces the wall clock, for tests
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Service",
		Description: "Document console forwarding and wall-clock time",
		Tools: []types.Tool{
			{
				ID:          TagConsole,
				Name:        "Console",
				Description: "Emit a document console message into the host log",
				Parameters: []types.Parameter{
					{Name: "level", Type: types.ParamString, Description: "log, error, warn, info, debug or trace", Required: true},
					{Name: "message", Type: types.ParamString, Description: "Message text", Required: true},
				},
				Returns: string(ipc.ShapeVoid),
			},
			{
				ID:          TagGetTime,
				Name:        "Get Time",
				Description: "Current wall-clock time in UTC",
				Parameters:  []types.Parameter{},
				Returns:     string(ipc.ShapeString),
			},
		},
	}
}

// Execute runs a system operation
func (p *Provider) Execute(ctx context.Context, tag string, params *ipc.Params) (ipc.Result, error) {
	switch tag {
	case TagConsole:
		return p.console(params)
	case TagGetTime:
		return p.getTime()
	default:
		return ipc.Result{}, fmt.Errorf("unknown tool: %s", tag)
	}
}

func (p *Provider) console(params *ipc.Params) (ipc.Result, error) {
	level, err := params.String("level")
	if err != nil {
		return ipc.Result{}, err
	}
	message, err := params.String("message")
	if err != nil {
		return ipc.Result{}, err
	}

	switch level {
	case "log", "info":
		p.document.Info(message)
	case "error":
		p.document.Error(message)
	case "warn":
		p.document.Warn(message)
	case "debug":
		p.document.Debug(message)
	case "trace":
		p.document.Trace(message)
	default:
		p.logger.Error(fmt.Sprintf("unknown level %s for message %s", level, message),
			zap.String("level", level),
		)
	}

	return ipc.Void(), nil
}

func (p *Provider) getTime() (ipc.Result, error) {
	now := p.now().UTC()
	p.logger.Trace("GetTime", zap.Time("now", now))
	return ipc.Text(now.Format(TimeLayout)), nil
}
