package stream

import (
	"sync"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/parc/buffer"
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/iface"
	"github.com/wippyai/parc/object"
)

// memory writes into a WebAssembly guest's linear memory at an advancing
// cursor.
type memory struct {
	mu     sync.Mutex
	mem    api.Memory
	cursor uint32
}

var memoryClass = &object.Class[memory]{Name: "stream.memory"}

type memoryOps struct{}

func (memoryOps) Write(private object.Ref, buf *object.Object[buffer.Buffer]) (int, error) {
	p, err := payload[memory](private, memoryClass.Name)
	if err != nil {
		return 0, err
	}
	b := buf.Value()
	data := b.Bytes()

	p.mu.Lock()
	defer p.mu.Unlock()
	size := uint64(p.mem.Size())
	if uint64(p.cursor)+uint64(len(data)) > size {
		return 0, errors.OutOfBounds(errors.PhaseWrite, int(p.cursor), len(data), int(size))
	}
	if !p.mem.Write(p.cursor, data) {
		return 0, errors.OutOfBounds(errors.PhaseWrite, int(p.cursor), len(data), int(size))
	}
	p.cursor += uint32(len(data))
	_ = b.Advance(len(data))
	return len(data), nil
}

// NewLinearMemory returns a stream writing into mem starting at offset.
// The guest memory is borrowed; the stream never frees it.
func NewLinearMemory(rt *object.Runtime, mem api.Memory, offset uint32) (*Stream, error) {
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseCreate, "nil memory")
	}
	private := object.New(rt, memoryClass, func(p *memory) {
		p.mem = mem
		p.cursor = offset
	})
	defer object.Release(&private)
	return New(rt, private, memoryOps{}), nil
}

// Cursor returns the next write offset of a linear memory stream.
func Cursor(s *Stream) (uint32, bool) {
	o, ok := object.As[memory](iface.Private(s))
	if !ok {
		return 0, false
	}
	p := o.Value()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor, true
}
