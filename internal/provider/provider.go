package provider

import (
	"fmt"

	"KeywordEngine/internal/ports"
)

// Factory builds a metrics provider from its endpoint and credentials.
// Registering factories rather than instances lets config pick the strategy
// at startup without the app package knowing every provider's constructor.
type Factory func(endpoint, apiKey string, timeoutSeconds int) ports.MetricsProvider

// Registry keeps a mapping from provider names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces a provider factory.
func (r *Registry) Register(name string, factory Factory) {
	if r.factories == nil {
		r.factories = map[string]Factory{}
	}
	r.factories[name] = factory
}

// Resolve returns a provider factory by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Factory, error) {
	if factory, ok := r.factories[name]; ok {
		return factory, nil
	}
	return nil, fmt.Errorf("metrics provider %s is not registered", name)
}
