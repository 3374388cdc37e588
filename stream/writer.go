package stream

import (
	"io"
	"sync"

	"github.com/wippyai/parc/buffer"
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/object"
)

// writer adapts an io.Writer the caller keeps ownership of.
type writer struct {
	mu sync.Mutex
	w  io.Writer
}

var writerClass = &object.Class[writer]{Name: "stream.writer"}

type writerOps struct{}

func (writerOps) Write(private object.Ref, buf *object.Object[buffer.Buffer]) (int, error) {
	p, err := payload[writer](private, writerClass.Name)
	if err != nil {
		return 0, err
	}
	b := buf.Value()
	p.mu.Lock()
	n, werr := p.w.Write(b.Bytes())
	p.mu.Unlock()
	if n > 0 {
		_ = b.Advance(n)
	}
	if werr != nil {
		return n, errors.IO(errors.PhaseWrite, "write", werr)
	}
	return n, nil
}

// NewWriter returns a stream writing to w. Writes are serialized. w is not
// closed when the stream is destroyed.
func NewWriter(rt *object.Runtime, w io.Writer) (*Stream, error) {
	if w == nil {
		return nil, errors.InvalidInput(errors.PhaseCreate, "nil writer")
	}
	private := object.New(rt, writerClass, func(p *writer) { p.w = w })
	defer object.Release(&private)
	return New(rt, private, writerOps{}), nil
}
