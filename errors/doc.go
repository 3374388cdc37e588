// Package errors provides structured error types for the object runtime.
//
// Errors are categorized by Phase (which operation failed) and Kind (error category).
// The Error type carries the offending object, the Go type involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRelease, errors.KindOverRelease).
//		Object("buffer@01J9Z...").
//		Detail("reference count already zero").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NilHandle(errors.PhaseAcquire, "*object.Object[buffer.Buffer]")
//	err := errors.IO(errors.PhaseWrite, "write descriptor", cause)
//
// Kinds in the contract family (nil_handle, over_release, use_after_release,
// underflow, contract_violation) describe caller misuse. The runtime never
// returns them as ordinary errors; they are raised through the runtime's
// violation handler. IsContractViolation identifies them.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
