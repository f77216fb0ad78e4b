package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Factory builds an unconnected adapter. A nil logger means discard.
type Factory func(*slog.Logger) Adapter

// Registry maps adapter type names to factories. The zero value is ready
// to use and safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// defaultRegistry receives the adapters registered from init().
var defaultRegistry = &Registry{}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[name] = factory
}

// Get retrieves the factory for name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered adapter names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates an adapter for cfg.Type.
func (r *Registry) New(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}
	factory, ok := r.Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{Type: cfg.Type, Available: r.Names()}
	}
	return factory(logger), nil
}

// Register adds an adapter factory to the default registry.
// Called by adapter implementations in their init() functions.
func Register(name string, factory Factory) {
	defaultRegistry.Register(name, factory)
}

// Get retrieves an adapter factory from the default registry.
func Get(name string) (Factory, bool) {
	return defaultRegistry.Get(name)
}

// NewAdapter creates an adapter from the default registry.
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	return defaultRegistry.New(cfg, logger)
}

// ListAdapters returns all adapter names in the default registry.
func ListAdapters() []string {
	return defaultRegistry.Names()
}

// IsRegistered checks if an adapter type is in the default registry.
func IsRegistered(name string) bool {
	_, ok := defaultRegistry.Get(name)
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check the adapter key in sqlserde.yaml or the --adapter flag", e.Type, e.Available)
}
