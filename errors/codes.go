package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors, surfaced synchronously by builders.
const (
	// ErrCodeInvalidArgument indicates an absent or unusable argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Runtime errors, delivered through an observer's error channel.
const (
	// ErrCodeMalformedPlan indicates a plan that cannot be activated.
	ErrCodeMalformedPlan ErrorCode = "MALFORMED_PLAN"
	// ErrCodeSelectorFailed indicates a plan's result function failed.
	ErrCodeSelectorFailed ErrorCode = "SELECTOR_FAILED"
	// ErrCodeTeardownFailed indicates one or more subscriptions failed to dispose.
	ErrCodeTeardownFailed ErrorCode = "TEARDOWN_FAILED"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates a broken internal invariant.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
