package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/GriffinCanCode/webshell/internal/ipc"
	"github.com/GriffinCanCode/webshell/internal/shared/types"
)

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, tag string, params *ipc.Params) (ipc.Result, error)
}

// Registry is the immutable request-tag table
type Registry struct {
	services []types.Service
	handlers map[string]ipc.Handler
}

// NewRegistry builds the tag table from providers. Empty IDs and tags
// claimed by more than one tool are rejected.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{
		handlers: make(map[string]ipc.Handler),
	}

	seen := make(map[string]bool)
	for _, provider := range providers {
		def := provider.Definition()
		if def.ID == "" {
			return nil, fmt.Errorf("service ID cannot be empty")
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate service ID: %s", def.ID)
		}
		seen[def.ID] = true

		for _, tool := range def.Tools {
			if tool.ID == "" {
				return nil, fmt.Errorf("service %s: tool ID cannot be empty", def.ID)
			}
			if _, exists := r.handlers[tool.ID]; exists {
				return nil, fmt.Errorf("service %s: duplicate tool ID: %s", def.ID, tool.ID)
			}
			r.handlers[tool.ID] = bind(provider, tool.ID)
		}
		r.services = append(r.services, def)
	}

	return r, nil
}

func bind(provider Provider, tag string) ipc.Handler {
	return func(ctx context.Context, params *ipc.Params) (ipc.Result, error) {
		return provider.Execute(ctx, tag, params)
	}
}

// Lookup resolves a request tag
func (r *Registry) Lookup(tag string) (ipc.Handler, bool) {
	handler, ok := r.handlers[tag]
	return handler, ok
}

// List returns all registered services in registration order
func (r *Registry) List() []types.Service {
	return append([]types.Service(nil), r.services...)
}

// Tags returns every request tag in sorted order
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.handlers))
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	return map[string]interface{}{
		"total_services": len(r.services),
		"total_tools":    len(r.handlers),
	}
}
