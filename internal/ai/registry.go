package ai

import "sync"

// Factory creates a provider from its configuration
type Factory func(cfg *ProviderConfig) (Provider, error)

// Registry maps provider types to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return NewProviderError(ErrTypeConfiguration, "provider already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Create validates cfg and builds the provider registered for cfg.Type
func (r *Registry) Create(cfg *ProviderConfig) (Provider, error) {
	if cfg == nil {
		return nil, NewConfigurationError("", "config", "configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory, exists := r.factories[cfg.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, NewProviderError(ErrTypeNotFound, "provider not registered", cfg.Type)
	}

	return factory(cfg)
}
