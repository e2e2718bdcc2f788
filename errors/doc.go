// Package errors provides structured error types for the spellcheck module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The set of kinds is closed:
//
//	platform_unsupported  no capability module for the detected OS/arch
//	invalid_argument      a parameter cannot safely cross into native code
//	handle_disposed       an operation was attempted on a disposed checker
//	native_failure        the native capability reported a failure
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCall, errors.KindInvalidArgument).
//		Op("test-spelling").
//		Param("word").
//		Value(word).
//		Detail("contains NUL byte").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.PlatformUnsupported(runtime.GOOS, runtime.GOARCH)
//	err := errors.HandleDisposed("add-word")
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match on kind regardless of phase:
//
//	if stderrors.Is(err, errors.ErrHandleDisposed) { ... }
package errors
