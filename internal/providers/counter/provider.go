package counter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/ipc"
	"github.com/GriffinCanCode/webshell/internal/shared/types"
)

// Request tags answered by the counter provider.
const (
	TagIncrement = "IncrementCounter"
	TagDecrement = "DecrementCounter"
	TagUpdate    = "UpdateCounter"
)

// Provider does 32-bit counter arithmetic for the document. It keeps no state;
// the document owns the counter value.
type Provider struct {
	logger *logging.Logger
}

// NewProvider creates a counter provider
func NewProvider(logger *logging.Logger) *Provider {
	return &Provider{logger: logger.Named("counter")}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	value := []types.Parameter{
		{Name: "value", Type: types.ParamI32, Description: "Current counter value", Required: true},
	}
	return types.Service{
		ID:          "counter",
		Name:        "Counter",
		Description: "Wrapping 32-bit counter arithmetic",
		Tools: []types.Tool{
			{ID: TagIncrement, Name: "Increment", Description: "value + 1", Parameters: value, Returns: string(ipc.ShapeI32)},
			{ID: TagDecrement, Name: "Decrement", Description: "value - 1", Parameters: value, Returns: string(ipc.ShapeI32)},
			{ID: TagUpdate, Name: "Update", Description: "Report the counter value", Parameters: value, Returns: string(ipc.ShapeVoid)},
		},
	}
}

// Execute runs a counter operation
func (p *Provider) Execute(ctx context.Context, tag string, params *ipc.Params) (ipc.Result, error) {
	value, err := params.I32("value")
	if err != nil {
		return ipc.Result{}, err
	}

	switch tag {
	case TagIncrement:
		// int32 arithmetic wraps
		return ipc.I32(value + 1), nil
	case TagDecrement:
		return ipc.I32(value - 1), nil
	case TagUpdate:
		p.logger.Debug("counter updated", zap.Int32("value", value))
		return ipc.Void(), nil
	default:
		return ipc.Result{}, fmt.Errorf("unknown tool: %s", tag)
	}
}
