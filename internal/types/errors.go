package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for promptflow errors.
type ErrorCode string

// Module loading error codes
const (
	MODULE_NOT_FOUND      ErrorCode = "MODULE_NOT_FOUND"
	MODULE_LOAD_FAILED    ErrorCode = "MODULE_LOAD_FAILED"
	MODULE_ATTR_NOT_FOUND ErrorCode = "MODULE_ATTR_NOT_FOUND"
	MODULE_ALREADY_BOUND  ErrorCode = "MODULE_ALREADY_BOUND"
)

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Evaluator error codes
const (
	EVAL_INVALID_INPUT    ErrorCode = "EVAL_INVALID_INPUT"
	EVAL_JUDGE_FAILED     ErrorCode = "EVAL_JUDGE_FAILED"
	EVAL_BAD_JUDGE_OUTPUT ErrorCode = "EVAL_BAD_JUDGE_OUTPUT"
)

// LLM provider error codes
const (
	LLM_PROVIDER_NOT_FOUND ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	LLM_PROVIDER_EXISTS    ErrorCode = "LLM_PROVIDER_EXISTS"
	LLM_AUTH_FAILED        ErrorCode = "LLM_AUTH_FAILED"
	LLM_REQUEST_FAILED     ErrorCode = "LLM_REQUEST_FAILED"
	LLM_INVALID_INPUT      ErrorCode = "LLM_INVALID_INPUT"
)

// Simulator and runner error codes
const (
	SIM_INVALID_PROJECT ErrorCode = "SIM_INVALID_PROJECT"
	SIM_TARGET_FAILED   ErrorCode = "SIM_TARGET_FAILED"
	RUN_DATASET_FAILED  ErrorCode = "RUN_DATASET_FAILED"
	RUN_EXPORT_FAILED   ErrorCode = "RUN_EXPORT_FAILED"
)

// FlowError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type FlowError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *FlowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *FlowError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a FlowError with the same Code.
func (e *FlowError) Is(target error) bool {
	var flowErr *FlowError
	if errors.As(target, &flowErr) {
		return e.Code == flowErr.Code
	}
	return false
}

// NewError creates a new non-retryable FlowError with the given code and message.
func NewError(code ErrorCode, message string) *FlowError {
	return &FlowError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable FlowError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *FlowError {
	return &FlowError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable FlowError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *FlowError {
	return &FlowError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// CodeOf extracts the ErrorCode from an error chain.
// Returns an empty code when err is nil or carries no FlowError.
func CodeOf(err error) ErrorCode {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Code
	}
	return ""
}
