package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified rxkit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode reports whether err's chain contains an AppError with code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// --- Common Error Constructors ---

// InvalidArgument creates an error for an absent or unusable argument.
func InvalidArgument(arg, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("invalid argument %s: %s", arg, reason),
		Details: map[string]any{"argument": arg},
	}
}

// MalformedPlan creates an error for a plan that cannot be activated.
func MalformedPlan(index int, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedPlan,
		Message: fmt.Sprintf("plan %d is malformed: %s", index, reason),
		Details: map[string]any{"plan": index},
	}
}

// SelectorFailed wraps the failure of a plan's result function.
func SelectorFailed(index int, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeSelectorFailed,
		Message: fmt.Sprintf("selector of plan %d failed", index),
		Details: map[string]any{"plan": index},
		Cause:   cause,
	}
}

// TeardownFailed wraps the failures collected while disposing subscriptions.
func TeardownFailed(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeTeardownFailed,
		Message: "one or more subscriptions failed to dispose",
		Cause:   cause,
	}
}

// InvalidConfig creates an error for configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// Internal creates an error for a broken internal invariant.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "an internal invariant was violated",
		Cause:   cause,
	}
}
