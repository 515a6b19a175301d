package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/types"
)

// stubProvider implements the Provider interface for testing
type stubProvider struct {
	name    string
	healthy bool
}

func (s *stubProvider) Name() string {
	return s.name
}

func (s *stubProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubProvider) Health(ctx context.Context) types.HealthStatus {
	if s.healthy {
		return types.Healthy("ok")
	}
	return types.Unhealthy("down")
}

func TestRegisterProvider(t *testing.T) {
	reg := NewProviderRegistry()

	require.NoError(t, reg.RegisterProvider(&stubProvider{name: "openai", healthy: true}))

	err := reg.RegisterProvider(&stubProvider{name: "openai", healthy: true})
	require.Error(t, err)
	assert.Equal(t, types.LLM_PROVIDER_EXISTS, types.CodeOf(err))

	err = reg.RegisterProvider(nil)
	require.Error(t, err)
	assert.Equal(t, types.LLM_INVALID_INPUT, types.CodeOf(err))

	err = reg.RegisterProvider(&stubProvider{name: ""})
	require.Error(t, err)
	assert.Equal(t, types.LLM_INVALID_INPUT, types.CodeOf(err))
}

func TestGetAndUnregisterProvider(t *testing.T) {
	reg := NewProviderRegistry()
	p := &stubProvider{name: "ollama", healthy: true}
	require.NoError(t, reg.RegisterProvider(p))

	got, err := reg.GetProvider("ollama")
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = reg.GetProvider("ghost")
	require.Error(t, err)
	assert.Equal(t, types.LLM_PROVIDER_NOT_FOUND, types.CodeOf(err))

	require.NoError(t, reg.UnregisterProvider("ollama"))
	err = reg.UnregisterProvider("ollama")
	require.Error(t, err)
	assert.Equal(t, types.LLM_PROVIDER_NOT_FOUND, types.CodeOf(err))
}

func TestListProvidersSorted(t *testing.T) {
	reg := NewProviderRegistry()
	require.NoError(t, reg.RegisterProvider(&stubProvider{name: "openai"}))
	require.NoError(t, reg.RegisterProvider(&stubProvider{name: "anthropic"}))

	assert.Equal(t, []string{"anthropic", "openai"}, reg.ListProviders())
}

func TestRegistryHealth(t *testing.T) {
	ctx := context.Background()

	reg := NewProviderRegistry()
	assert.Equal(t, types.HealthStateUnhealthy, reg.Health(ctx).State)

	require.NoError(t, reg.RegisterProvider(&stubProvider{name: "a", healthy: true}))
	assert.Equal(t, types.HealthStateHealthy, reg.Health(ctx).State)

	require.NoError(t, reg.RegisterProvider(&stubProvider{name: "b", healthy: false}))
	assert.Equal(t, types.HealthStateDegraded, reg.Health(ctx).State)

	require.NoError(t, reg.UnregisterProvider("a"))
	assert.Equal(t, types.HealthStateUnhealthy, reg.Health(ctx).State)
}
