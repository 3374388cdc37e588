package stream

import (
	"os"
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/parc/buffer"
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/object"
)

// file is the private instance of a descriptor-backed stream. It owns the
// descriptor and closes it when destroyed.
type file struct {
	f   *os.File
	log *zap.Logger
}

var fileClass = &object.Class[file]{Name: "stream.file"}

// Destroy syncs and closes the descriptor. Failures are logged; there is no
// caller left to return them to.
func (p *file) Destroy() {
	if p.f == nil {
		return
	}
	err := p.f.Sync()
	if unsyncable(err) {
		err = nil
	}
	err = multierr.Append(err, p.f.Close())
	if err != nil {
		p.log.Error("close stream file", zap.String("name", p.f.Name()), zap.Error(err))
	}
	p.f = nil
}

type fileOps struct{}

func (fileOps) Write(private object.Ref, buf *object.Object[buffer.Buffer]) (int, error) {
	p, err := payload[file](private, fileClass.Name)
	if err != nil {
		return 0, err
	}
	b := buf.Value()
	n, werr := p.f.Write(b.Bytes())
	if n > 0 {
		_ = b.Advance(n)
	}
	if werr != nil {
		return n, errors.IO(errors.PhaseWrite, "write "+p.f.Name(), werr)
	}
	return n, nil
}

// NewFile returns a stream writing to f. The stream takes ownership of f
// and closes it on its last release.
func NewFile(rt *object.Runtime, f *os.File) (*Stream, error) {
	if f == nil {
		return nil, errors.InvalidInput(errors.PhaseCreate, "nil file")
	}
	if rt == nil {
		rt = object.Default()
	}
	private := object.New(rt, fileClass, func(p *file) {
		p.f = f
		p.log = rt.Logger()
	})
	defer object.Release(&private)
	return New(rt, private, fileOps{}), nil
}

// NewFileDescriptor returns a stream writing to an open descriptor, taking
// ownership of it.
func NewFileDescriptor(rt *object.Runtime, fd uintptr) (*Stream, error) {
	f := os.NewFile(fd, "fd"+strconv.FormatUint(uint64(fd), 10))
	if f == nil {
		return nil, errors.InvalidInput(errors.PhaseCreate, "invalid descriptor "+strconv.FormatUint(uint64(fd), 10))
	}
	return NewFile(rt, f)
}
