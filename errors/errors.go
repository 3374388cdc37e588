package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which runtime operation produced the error
type Phase string

const (
	PhaseCreate   Phase = "create"   // object allocation
	PhaseAcquire  Phase = "acquire"  // reference increment
	PhaseRelease  Phase = "release"  // reference decrement and destroy
	PhaseCounter  Phase = "counter"  // atomic counter operations
	PhaseDispatch Phase = "dispatch" // interface operation dispatch
	PhaseWrite    Phase = "write"    // stream writes
	PhaseReport   Phase = "report"   // log reporting
	PhaseFormat   Phase = "format"   // log entry formatting
	PhaseBuffer   Phase = "buffer"   // byte buffer access
	PhaseMetrics  Phase = "metrics"  // collector registration
)

// Kind categorizes the error
type Kind string

const (
	KindContractViolation Kind = "contract_violation"
	KindNilHandle         Kind = "nil_handle"
	KindOverRelease       Kind = "over_release"
	KindUseAfterRelease   Kind = "use_after_release"
	KindUnderflow         Kind = "underflow"
	KindAllocation        Kind = "allocation"
	KindTypeMismatch      Kind = "type_mismatch"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindReadOnly          Kind = "read_only"
	KindIO                Kind = "io"
	KindInvalidInput      Kind = "invalid_input"
	KindRegistration      Kind = "registration"
)

// contractKinds are the kinds treated as fatal caller misuse.
var contractKinds = map[Kind]bool{
	KindContractViolation: true,
	KindNilHandle:         true,
	KindOverRelease:       true,
	KindUseAfterRelease:   true,
	KindUnderflow:         true,
}

// Error is the structured error type used throughout the runtime
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Object string // kind@id of the offending object, if known
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Object != "" {
		b.WriteString(" on ")
		b.WriteString(e.Object)
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// ContractViolation reports whether the error is a caller misuse rather
// than a recoverable failure.
func (e *Error) ContractViolation() bool {
	return contractKinds[e.Kind]
}

// IsContractViolation reports whether err, or any error it wraps, is a
// contract violation.
func IsContractViolation(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.ContractViolation()
	}
	return false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Object sets the offending object description
func (b *Builder) Object(desc string) *Builder {
	b.err.Object = desc
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NilHandle creates an error for a nil handle passed where a live object is required
func NilHandle(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilHandle,
		GoType: goType,
		Detail: "nil handle",
	}
}

// OverRelease creates an error for a release with no outstanding reference
func OverRelease(object string) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindOverRelease,
		Object: object,
		Detail: "release without a matching reference",
	}
}

// UseAfterRelease creates an error for an operation on a destroyed object
func UseAfterRelease(phase Phase, object string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUseAfterRelease,
		Object: object,
		Detail: "object already destroyed",
	}
}

// Underflow creates an error for a counter decremented below zero
func Underflow(bits int) *Error {
	return &Error{
		Phase:  PhaseCounter,
		Kind:   KindUnderflow,
		Detail: fmt.Sprintf("uint%d counter decremented below zero", bits),
	}
}

// TypeMismatch creates an error for a handle of an unexpected concrete type
func TypeMismatch(phase Phase, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GoType: got,
		Detail: fmt.Sprintf("expected %s", want),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset, length, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) exceeds limit %d", offset, offset+length, limit),
		Value:  offset,
	}
}

// ReadOnly creates an error for a mutation of a read-only buffer
func ReadOnly(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReadOnly,
		Detail: "buffer is read-only",
	}
}

// IO wraps a backend I/O failure
func IO(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a metrics registration error
func Registration(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseMetrics,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register collector %s", name),
		Cause:  cause,
	}
}
