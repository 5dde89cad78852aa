package greeter

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/webshell/internal/ipc"
	"github.com/GriffinCanCode/webshell/internal/shared/types"
)

// TagGreet is the request tag answered by the greeter.
const TagGreet = "Greet"

// Age is reported for every greeted user.
const Age = 29

// User is the record returned by Greet
type User struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Provider answers greetings
type Provider struct{}

// NewProvider creates a greeter provider
func NewProvider() *Provider {
	return &Provider{}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "greeter",
		Name:        "Greeter",
		Description: "Builds a user record from a name",
		Tools: []types.Tool{
			{
				ID:          TagGreet,
				Name:        "Greet",
				Description: "Return a user record for the given name",
				Parameters: []types.Parameter{
					{Name: "name", Type: types.ParamString, Description: "User name", Required: true},
				},
				Returns: string(ipc.ShapeUser),
			},
		},
	}
}

// Execute runs a greeter operation
func (p *Provider) Execute(ctx context.Context, tag string, params *ipc.Params) (ipc.Result, error) {
	if tag != TagGreet {
		return ipc.Result{}, fmt.Errorf("unknown tool: %s", tag)
	}

	name, err := params.String("name")
	if err != nil {
		return ipc.Result{}, err
	}
	return ipc.Record(ipc.ShapeUser, User{Name: name, Age: Age}), nil
}
