// Package object implements reference-counted managed objects.
//
// An Object[T] is a single allocation holding a private header (reference
// count, descriptor, identity) and a caller-visible payload of type T:
//
//	buf := object.New(rt, &object.Class[Buffer]{Name: "buffer"}, func(b *Buffer) {
//	    b.data = make([]byte, 0, 64)
//	})
//	defer object.Release(&buf)
//
//	shared := buf.Acquire() // count 2
//	object.Release(&shared) // count 1, shared == nil
//
// # Lifecycle
//
// New returns an object with a count of one. Acquire increments it. Release
// decrements it and, when the prior value was one, runs the destructor
// exactly once, clears the payload and writes nil into the caller's variable.
// Concurrent holders may acquire and release freely; the counting strategy
// guarantees exactly one of them performs the destroy.
//
// # Descriptors and hooks
//
// A Class[T] names the payload type and optionally overrides Destroy, Equals,
// HashCode, Compare, ToString and Display. Payloads can instead implement
// Destroyer, Equaler[T], Hasher, Comparer[T], fmt.Stringer and Displayer.
// Without either, identity-based defaults apply.
//
// # Contract violations
//
// Releasing a nil handle, releasing more times than acquired, and using a
// destroyed object are programming errors. They are always detected and
// reported to the runtime's violation handler; the default handler logs and
// panics with an *errors.Error. Violations on nil handles are reported to
// Default(), since a nil handle carries no runtime.
//
// # Runtimes
//
// A Runtime carries the counting strategy, logger, metrics and allocation
// tracking shared by the objects it creates. Default() serves callers that
// do not need their own.
package object
