package object

import (
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/wippyai/parc/errors"
)

// Class describes a payload type to the runtime. Every field is optional.
// A nil hook falls back to the matching payload interface (Destroyer,
// Equaler, Hasher, Comparer, fmt.Stringer, Displayer) and then to an
// identity-based default.
//
// A Class is read-only once objects reference it and may be shared by any
// number of objects.
type Class[T any] struct {
	Name     string
	Destroy  func(v *T)
	Equals   func(a, b *T) bool
	HashCode func(v *T) uint32
	Compare  func(a, b *T) int
	ToString func(v *T) string
	Display  func(w io.Writer, indent int, v *T)
}

// Destroyer is implemented by payloads that release resources when the
// last reference is dropped.
type Destroyer interface {
	Destroy()
}

// Equaler is implemented by payloads with value equality.
type Equaler[T any] interface {
	Equal(other *T) bool
}

// Hasher is implemented by payloads with a hash consistent with Equal.
type Hasher interface {
	HashCode() uint32
}

// Comparer is implemented by ordered payloads.
type Comparer[T any] interface {
	Compare(other *T) int
}

// Displayer is implemented by payloads with a multi-line debug rendering.
type Displayer interface {
	Display(w io.Writer, indent int)
}

func (c *Class[T]) destroy(v *T) {
	if c != nil && c.Destroy != nil {
		c.Destroy(v)
		return
	}
	if d, ok := any(v).(Destroyer); ok {
		d.Destroy()
	}
}

// Equals reports whether a and b are equal. Two nil handles are equal.
// Without an equality hook only the same object equals itself.
func Equals[T any](a, b *Object[T]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	va, vb := a.Value(), b.Value()
	if va == nil || vb == nil {
		return false
	}
	if a.class != nil && a.class.Equals != nil {
		return a.class.Equals(va, vb)
	}
	if e, ok := any(va).(Equaler[T]); ok {
		return e.Equal(vb)
	}
	return false
}

// HashCode returns the object's hash. Without a hash hook the hash is
// derived from the object's identity, consistent with the default Equals.
func HashCode[T any](o *Object[T]) uint32 {
	v := o.Value()
	if v == nil {
		return 0
	}
	if o.class != nil && o.class.HashCode != nil {
		return o.class.HashCode(v)
	}
	if h, ok := any(v).(Hasher); ok {
		return h.HashCode()
	}
	return foldHash(xxhash.Sum64(o.id[:]))
}

// Compare orders a and b. Without a compare hook objects are ordered by
// identity, which follows creation time.
func Compare[T any](a, b *Object[T]) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	va, vb := a.Value(), b.Value()
	if va == nil || vb == nil {
		return 0
	}
	if a.class != nil && a.class.Compare != nil {
		return a.class.Compare(va, vb)
	}
	if c, ok := any(va).(Comparer[T]); ok {
		return c.Compare(vb)
	}
	return a.id.Compare(b.id)
}

// ToString renders the object. Without a hook the result is kind@id.
func ToString[T any](o *Object[T]) string {
	if o == nil {
		return "<nil>"
	}
	if !o.Alive() {
		return describe(o) + " (destroyed)"
	}
	v := &o.value
	if o.class != nil && o.class.ToString != nil {
		return o.class.ToString(v)
	}
	if s, ok := any(v).(fmt.Stringer); ok {
		return s.String()
	}
	return describe(o)
}

// Display writes a debug rendering of the object at the given indentation
// level, followed by its reference count.
func Display[T any](o *Object[T], w io.Writer, indent int) {
	if o == nil {
		Indent(w, indent, "<nil>")
		return
	}
	Indent(w, indent, "%s refs=%d {", describe(o), o.References())
	if o.Alive() {
		v := &o.value
		d, displayer := any(v).(Displayer)
		switch {
		case o.class != nil && o.class.Display != nil:
			o.class.Display(w, indent+1, v)
		case displayer:
			d.Display(w, indent+1)
		default:
			Indent(w, indent+1, "%s", ToString(o))
		}
	}
	Indent(w, indent, "}")
}

// Indent writes one formatted line prefixed by four spaces per level.
func Indent(w io.Writer, level int, format string, args ...any) {
	if level > 0 {
		io.WriteString(w, strings.Repeat("    ", level))
	}
	fmt.Fprintf(w, format, args...)
	io.WriteString(w, "\n")
}

func foldHash(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}

// HashBytes hashes b into a 32-bit code. Payload hash hooks may use it to
// stay consistent with the runtime's default hashing.
func HashBytes(b []byte) uint32 {
	return foldHash(xxhash.Sum64(b))
}

// MustBeAlive reports a use-after-release violation for a destroyed object
// and returns false. Wrappers call it before dispatching operations.
func MustBeAlive(r Ref, phase errors.Phase) bool {
	if r == nil || r.isNil() {
		Default().Violation(errors.NilHandle(phase, "object.Ref"))
		return false
	}
	if !r.Alive() {
		r.Runtime().Violation(errors.UseAfterRelease(phase, describe(r)))
		return false
	}
	return true
}
