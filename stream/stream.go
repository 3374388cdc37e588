package stream

import (
	"github.com/wippyai/parc/buffer"
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/iface"
	"github.com/wippyai/parc/object"
)

// Operations is the operation table of a stream backend.
//
// Write consumes the remaining content of buf, advancing its position by
// the number of bytes written, and returns that number. The backend adds no
// buffering: a short write is reported as is.
type Operations interface {
	Write(private object.Ref, buf *object.Object[buffer.Buffer]) (int, error)
}

// Stream is a managed polymorphic output stream.
type Stream = iface.Wrapper[Operations]

var class = &object.Class[iface.Interface[Operations]]{Name: "stream"}

// New wraps private with ops. The stream holds its own reference to private.
func New(rt *object.Runtime, private object.Ref, ops Operations) *Stream {
	return iface.Wrap(rt, class, private, ops)
}

// Write writes the remaining content of buf to s.
func Write(s *Stream, buf *object.Object[buffer.Buffer]) (int, error) {
	if !object.MustBeAlive(buf, errors.PhaseWrite) {
		return 0, released("buffer")
	}
	var n int
	err := iface.Invoke(s, func(ops Operations, private object.Ref) error {
		var err error
		n, err = ops.Write(private, buf)
		return err
	})
	return n, err
}

// WriteBytes writes p to s through a transient buffer that aliases p.
func WriteBytes(s *Stream, p []byte) (int, error) {
	if !object.MustBeAlive(s, errors.PhaseWrite) {
		return 0, released("stream")
	}
	buf := buffer.Wrap(s.Runtime(), p)
	defer object.Release(&buf)
	return Write(s, buf)
}

// WriteString writes str to s without copying it.
func WriteString(s *Stream, str string) (int, error) {
	if !object.MustBeAlive(s, errors.PhaseWrite) {
		return 0, released("stream")
	}
	buf := buffer.WrapString(s.Runtime(), str)
	defer object.Release(&buf)
	return Write(s, buf)
}

// Acquire adds a reference to s.
func Acquire(s *Stream) *Stream {
	return s.Acquire()
}

// Release drops the reference in *s and sets it to nil. The backend's
// private instance is released with the last stream reference.
func Release(s **Stream) {
	object.Release(s)
}

func released(what string) error {
	return errors.New(errors.PhaseWrite, errors.KindContractViolation).
		Detail("write on released %s", what).
		Build()
}

// payload resolves a backend's private instance to its typed payload.
func payload[P any](private object.Ref, want string) (*P, error) {
	o, ok := object.As[P](private)
	if !ok {
		got := "<nil>"
		if private != nil {
			got = private.Kind()
		}
		return nil, errors.TypeMismatch(errors.PhaseWrite, want, got)
	}
	v := o.Value()
	if v == nil {
		return nil, released(want)
	}
	return v, nil
}
