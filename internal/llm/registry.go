package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/je17/promptflow/internal/types"
)

// ProviderRegistry manages judge-model provider registration and discovery
// with thread-safe operations and built-in health aggregation.
type ProviderRegistry interface {
	// RegisterProvider registers a provider with the registry
	RegisterProvider(provider Provider) error

	// UnregisterProvider removes a provider from the registry by name
	UnregisterProvider(name string) error

	// GetProvider retrieves a provider by name
	GetProvider(name string) (Provider, error)

	// ListProviders returns the names of all registered providers
	ListProviders() []string

	// Health returns the overall health status of the registry
	Health(ctx context.Context) types.HealthStatus
}

// DefaultProviderRegistry implements ProviderRegistry with a sync.RWMutex
// protecting concurrent access to the provider map.
type DefaultProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewProviderRegistry creates a new DefaultProviderRegistry instance
func NewProviderRegistry() *DefaultProviderRegistry {
	return &DefaultProviderRegistry{
		providers: make(map[string]Provider),
	}
}

// RegisterProvider registers a provider with the registry.
// Returns LLM_PROVIDER_EXISTS if a provider with the same name is already
// registered and LLM_INVALID_INPUT if the provider is nil or unnamed.
func (r *DefaultProviderRegistry) RegisterProvider(provider Provider) error {
	if provider == nil {
		return types.NewError(types.LLM_INVALID_INPUT, "provider cannot be nil")
	}

	name := provider.Name()
	if name == "" {
		return types.NewError(types.LLM_INVALID_INPUT, "provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return types.NewError(types.LLM_PROVIDER_EXISTS,
			fmt.Sprintf("provider %q already registered", name))
	}

	r.providers[name] = provider
	return nil
}

// UnregisterProvider removes a provider from the registry by name.
// Returns LLM_PROVIDER_NOT_FOUND if the provider doesn't exist.
func (r *DefaultProviderRegistry) UnregisterProvider(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return types.NewError(types.LLM_PROVIDER_NOT_FOUND,
			fmt.Sprintf("provider %q not found", name))
	}

	delete(r.providers, name)
	return nil
}

// GetProvider retrieves a provider by name.
// Returns LLM_PROVIDER_NOT_FOUND if the provider doesn't exist.
func (r *DefaultProviderRegistry) GetProvider(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, types.NewError(types.LLM_PROVIDER_NOT_FOUND,
			fmt.Sprintf("provider %q not found", name))
	}

	return provider, nil
}

// ListProviders returns the names of all registered providers in sorted order.
func (r *DefaultProviderRegistry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Health returns the overall health status of the registry.
// The registry is:
// - Healthy if all providers are healthy
// - Degraded if some providers are unhealthy
// - Unhealthy if all providers are unhealthy or no providers are registered
func (r *DefaultProviderRegistry) Health(ctx context.Context) types.HealthStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.providers) == 0 {
		return types.Unhealthy("no providers registered")
	}

	healthyCount := 0
	unhealthyCount := 0
	total := len(r.providers)

	for _, provider := range r.providers {
		status := provider.Health(ctx)
		if status.IsHealthy() {
			healthyCount++
		} else {
			unhealthyCount++
		}
	}

	if unhealthyCount == 0 {
		return types.Healthy(fmt.Sprintf("all %d providers healthy", total))
	} else if healthyCount == 0 {
		return types.Unhealthy(fmt.Sprintf("all %d providers unhealthy", total))
	}
	return types.Degraded(fmt.Sprintf("%d/%d providers healthy", healthyCount, total))
}
