// Package errors provides the structured error type shared by rxkit packages.
//
// Every error an rxkit package creates is an *AppError carrying a
// machine-readable code, so callers can branch on the failure class without
// string matching:
//
//	if errors.IsCode(err, errors.ErrCodeSelectorFailed) {
//	    // a plan's result function failed; err unwraps to its cause
//	}
//
// Errors produced by user code (a failing source, a failing selector) are
// kept reachable through Unwrap, so the standard library errors.Is and
// errors.As see through the wrapper.
package errors
