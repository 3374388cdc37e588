package buffer

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"unsafe"

	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/object"
)

// Buffer is a byte region with a read/write position and a limit.
//
// Bytes between position and limit are the remaining content: writers fill
// it with Put, readers consume it with Advance. Flip turns a filled buffer
// into a readable one.
type Buffer struct {
	data     []byte
	position int
	limit    int
	readOnly bool
}

var class = &object.Class[Buffer]{Name: "buffer"}

// Allocate returns a writable buffer with the given capacity, position zero
// and limit at capacity.
func Allocate(rt *object.Runtime, capacity int) *object.Object[Buffer] {
	if capacity < 0 {
		capacity = 0
	}
	return object.New(rt, class, func(b *Buffer) {
		b.data = make([]byte, capacity)
		b.limit = capacity
	})
}

// Wrap returns a buffer over data without copying. The remaining content is
// all of data; writes modify the caller's slice.
func Wrap(rt *object.Runtime, data []byte) *object.Object[Buffer] {
	return object.New(rt, class, func(b *Buffer) {
		b.data = data
		b.limit = len(data)
	})
}

// WrapString returns a read-only buffer over s without copying.
func WrapString(rt *object.Runtime, s string) *object.Object[Buffer] {
	return object.New(rt, class, func(b *Buffer) {
		b.data = unsafe.Slice(unsafe.StringData(s), len(s))
		b.limit = len(s)
		b.readOnly = true
	})
}

// Copy returns a writable buffer holding a copy of data.
func Copy(rt *object.Runtime, data []byte) *object.Object[Buffer] {
	return object.New(rt, class, func(b *Buffer) {
		b.data = bytes.Clone(data)
		if b.data == nil {
			b.data = []byte{}
		}
		b.limit = len(data)
	})
}

// Bytes returns the remaining content. The slice aliases the buffer and must
// not be modified when the buffer is read-only.
func (b *Buffer) Bytes() []byte {
	return b.data[b.position:b.limit]
}

// Remaining returns the number of bytes between position and limit.
func (b *Buffer) Remaining() int {
	return b.limit - b.position
}

func (b *Buffer) Position() int  { return b.position }
func (b *Buffer) Limit() int     { return b.limit }
func (b *Buffer) Capacity() int  { return len(b.data) }
func (b *Buffer) ReadOnly() bool { return b.readOnly }

// Put copies p at the current position and advances it.
func (b *Buffer) Put(p []byte) error {
	if b.readOnly {
		return errors.ReadOnly(errors.PhaseBuffer)
	}
	if len(p) > b.Remaining() {
		return errors.OutOfBounds(errors.PhaseBuffer, b.position, len(p), b.limit)
	}
	b.position += copy(b.data[b.position:], p)
	return nil
}

// PutString copies s at the current position and advances it.
func (b *Buffer) PutString(s string) error {
	if b.readOnly {
		return errors.ReadOnly(errors.PhaseBuffer)
	}
	if len(s) > b.Remaining() {
		return errors.OutOfBounds(errors.PhaseBuffer, b.position, len(s), b.limit)
	}
	b.position += copy(b.data[b.position:], s)
	return nil
}

// Flip sets the limit to the current position and rewinds the position, so
// that what was written becomes the remaining content.
func (b *Buffer) Flip() {
	b.limit = b.position
	b.position = 0
}

// Clear rewinds the position and restores the limit to capacity.
func (b *Buffer) Clear() {
	b.position = 0
	b.limit = len(b.data)
}

// Advance moves the position forward by n bytes.
func (b *Buffer) Advance(n int) error {
	if n < 0 || n > b.Remaining() {
		return errors.OutOfBounds(errors.PhaseBuffer, b.position, n, b.limit)
	}
	b.position += n
	return nil
}

// SetPosition moves the position to pos, which must not exceed the limit.
func (b *Buffer) SetPosition(pos int) error {
	if pos < 0 || pos > b.limit {
		return errors.OutOfBounds(errors.PhaseBuffer, pos, 0, b.limit)
	}
	b.position = pos
	return nil
}

// Equal compares remaining content.
func (b *Buffer) Equal(other *Buffer) bool {
	return bytes.Equal(b.Bytes(), other.Bytes())
}

// HashCode hashes the remaining content.
func (b *Buffer) HashCode() uint32 {
	return object.HashBytes(b.Bytes())
}

// Compare orders buffers lexicographically by remaining content.
func (b *Buffer) Compare(other *Buffer) int {
	return bytes.Compare(b.Bytes(), other.Bytes())
}

func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Display writes position, limit and a hex dump of the remaining content.
func (b *Buffer) Display(w io.Writer, indent int) {
	object.Indent(w, indent, "position=%d limit=%d capacity=%d readonly=%t",
		b.position, b.limit, len(b.data), b.readOnly)
	dump := strings.TrimSuffix(hex.Dump(b.Bytes()), "\n")
	if dump == "" {
		return
	}
	for _, line := range strings.Split(dump, "\n") {
		object.Indent(w, indent, "%s", line)
	}
}
