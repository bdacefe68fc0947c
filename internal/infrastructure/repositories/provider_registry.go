package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/ghpush/internal/domain/repositories"
)

// ProviderSettings carries what a provider factory needs to build a client.
type ProviderSettings struct {
	Token  string
	APIURL string
}

// ProviderFactory is a constructor function that creates a ContentRepository.
type ProviderFactory func(settings ProviderSettings) (domainRepos.ContentRepository, error)

// ProviderRegistry manages all registered content store implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *ProviderRegistry) Get(name string, settings ProviderSettings) (domainRepos.ContentRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", name)
	}
	return factory(settings)
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
