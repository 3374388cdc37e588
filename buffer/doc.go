// Package buffer provides the managed byte buffer that streams write and
// formatters produce.
//
// A buffer is an object.Object[Buffer]; release it like any other managed
// object. Wrap and WrapString alias caller memory, Allocate and Copy own
// theirs.
package buffer
