package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/je17/promptflow/internal/types"
)

// NewAuthError creates an authentication failure error for a provider.
func NewAuthError(provider string, cause error) error {
	if cause != nil {
		return types.WrapError(types.LLM_AUTH_FAILED,
			fmt.Sprintf("provider %q authentication failed", provider), cause)
	}
	return types.NewError(types.LLM_AUTH_FAILED,
		fmt.Sprintf("provider %q has no API key configured", provider))
}

// NewInvalidInputError creates an invalid input error for a provider.
func NewInvalidInputError(provider, message string) error {
	return types.NewError(types.LLM_INVALID_INPUT,
		fmt.Sprintf("provider %q: %s", provider, message))
}

// TranslateError maps a raw provider error into a structured FlowError.
// Rate limits and timeouts are marked retryable; everything else is not.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var flowErr *types.FlowError
	if errors.As(err, &flowErr) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return types.WrapError(types.LLM_REQUEST_FAILED,
			fmt.Sprintf("provider %q request canceled", provider), err)

	case strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "401"):
		return types.WrapError(types.LLM_AUTH_FAILED,
			fmt.Sprintf("provider %q authentication failed", provider), err)

	case strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "429"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "connection refused"):
		werr := types.WrapError(types.LLM_REQUEST_FAILED,
			fmt.Sprintf("provider %q request failed", provider), err)
		werr.Retryable = true
		return werr

	default:
		return types.WrapError(types.LLM_REQUEST_FAILED,
			fmt.Sprintf("provider %q request failed", provider), err)
	}
}

// IsRetryable determines if an error is transient and may succeed on retry.
func IsRetryable(err error) bool {
	var flowErr *types.FlowError
	if !errors.As(err, &flowErr) {
		return false
	}
	return flowErr.Retryable
}
