// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeReadFailure,
//	    "failed to read variable",
//	    targetErr,
//	    map[string]interface{}{
//	        "variable": name,
//	        "iteration": iter,
//	    },
//	)
package errors
