package providers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/je17/promptflow/internal/llm"
	"github.com/je17/promptflow/internal/types"
)

// MockCall represents a recorded call to the mock provider
type MockCall struct {
	Request llm.CompletionRequest
}

// MockProvider implements llm.Provider for testing. It replays a scripted
// sequence of responses, repeating the last one once exhausted, and records
// every request it receives.
type MockProvider struct {
	mu            sync.RWMutex
	responses     []string
	responseIndex int
	calls         []MockCall
}

// NewMockProvider creates a new mock provider
func NewMockProvider(responses []string) *MockProvider {
	return &MockProvider{
		responses: responses,
		calls:     make([]MockCall, 0),
	}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Complete replays the next scripted response
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, MockCall{Request: req})

	if len(p.responses) == 0 {
		return nil, types.NewError(types.LLM_REQUEST_FAILED, "mock provider has no scripted responses")
	}

	content := p.responses[p.responseIndex]
	if p.responseIndex < len(p.responses)-1 {
		p.responseIndex++
	}

	return &llm.CompletionResponse{
		ID:      uuid.New().String(),
		Model:   "mock-model",
		Content: content,
	}, nil
}

// Health always reports healthy
func (p *MockProvider) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("mock provider ready")
}

// Calls returns a copy of all recorded calls
func (p *MockProvider) Calls() []MockCall {
	p.mu.RLock()
	defer p.mu.RUnlock()

	calls := make([]MockCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// CallCount returns the number of completions requested so far
func (p *MockProvider) CallCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.calls)
}
