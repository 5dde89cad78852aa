package providers

import (
	"github.com/GriffinCanCode/webshell/internal/domain/service"
	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/providers/counter"
	"github.com/GriffinCanCode/webshell/internal/providers/greeter"
	"github.com/GriffinCanCode/webshell/internal/providers/system"
)

// Defaults returns the providers registered by every shell
func Defaults(logger *logging.Logger) []service.Provider {
	return []service.Provider{
		system.NewProvider(logger),
		greeter.NewProvider(),
		counter.NewProvider(logger),
	}
}

// NewRegistry builds the registry over the default providers
func NewRegistry(logger *logging.Logger) (*service.Registry, error) {
	return service.NewRegistry(Defaults(logger)...)
}
