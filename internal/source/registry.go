package source

import (
	"fmt"
	"sort"

	"HackerNews/internal/ports"
)

// Strategy is a story source that can be selected by name from configuration.
type Strategy interface {
	ports.StorySource
	Name() string
}

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(strategy Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[strategy.Name()] = strategy
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.StorySource, error) {
	if strategy, ok := r.strategies[name]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("story source %q is not registered (known: %v)", name, r.Names())
}

// Names lists registered strategies alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
