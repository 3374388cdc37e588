package counter

import (
	"sync"
	"sync/atomic"

	"github.com/wippyai/parc/errors"
)

// Strategy performs read-modify-write operations on shared counters.
// Increment and Decrement return the value held immediately before the
// operation, so exactly one caller observes any given transition.
// CompareAndSwap stores next only if the counter still holds old.
type Strategy interface {
	Increment32(p *uint32) uint32
	Decrement32(p *uint32) uint32
	Load32(p *uint32) uint32
	CompareAndSwap32(p *uint32, old, next uint32) bool
	Increment64(p *uint64) uint64
	Decrement64(p *uint64) uint64
	Load64(p *uint64) uint64
	CompareAndSwap64(p *uint64, old, next uint64) bool
	Name() string
}

// LockFree uses hardware atomic add.
var LockFree Strategy = lockFree{}

// Locked guards plain read-modify-writes with a mutex.
var Locked Strategy = &locked{}

type lockFree struct{}

func (lockFree) Increment32(p *uint32) uint32 { return atomic.AddUint32(p, 1) - 1 }
func (lockFree) Decrement32(p *uint32) uint32 { return atomic.AddUint32(p, ^uint32(0)) + 1 }
func (lockFree) Load32(p *uint32) uint32      { return atomic.LoadUint32(p) }
func (lockFree) Increment64(p *uint64) uint64 { return atomic.AddUint64(p, 1) - 1 }
func (lockFree) Decrement64(p *uint64) uint64 { return atomic.AddUint64(p, ^uint64(0)) + 1 }
func (lockFree) Load64(p *uint64) uint64      { return atomic.LoadUint64(p) }
func (lockFree) Name() string                 { return "lock-free" }

func (lockFree) CompareAndSwap32(p *uint32, old, next uint32) bool {
	return atomic.CompareAndSwapUint32(p, old, next)
}

func (lockFree) CompareAndSwap64(p *uint64, old, next uint64) bool {
	return atomic.CompareAndSwapUint64(p, old, next)
}

// locked shares one mutex across all counters, like a toolchain without
// intrinsics would. Loads take the lock too so they never observe a torn
// read-modify-write.
type locked struct {
	mu sync.Mutex
}

func (l *locked) Increment32(p *uint32) uint32 {
	l.mu.Lock()
	prior := *p
	*p = prior + 1
	l.mu.Unlock()
	return prior
}

func (l *locked) Decrement32(p *uint32) uint32 {
	l.mu.Lock()
	prior := *p
	*p = prior - 1
	l.mu.Unlock()
	return prior
}

func (l *locked) Load32(p *uint32) uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *p
}

func (l *locked) CompareAndSwap32(p *uint32, old, next uint32) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if *p != old {
		return false
	}
	*p = next
	return true
}

func (l *locked) Increment64(p *uint64) uint64 {
	l.mu.Lock()
	prior := *p
	*p = prior + 1
	l.mu.Unlock()
	return prior
}

func (l *locked) Decrement64(p *uint64) uint64 {
	l.mu.Lock()
	prior := *p
	*p = prior - 1
	l.mu.Unlock()
	return prior
}

func (l *locked) Load64(p *uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *p
}

func (l *locked) CompareAndSwap64(p *uint64, old, next uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if *p != old {
		return false
	}
	*p = next
	return true
}

func (l *locked) Name() string { return "locked" }

// Uint32 is a 32-bit counter. The zero value is ready to use with the
// Default strategy.
type Uint32 struct {
	v        uint32
	strategy Strategy
}

// NewUint32 returns a counter starting at initial that uses s, or Default if s is nil.
func NewUint32(initial uint32, s Strategy) *Uint32 {
	return &Uint32{v: initial, strategy: s}
}

func (c *Uint32) s() Strategy {
	if c.strategy == nil {
		return Default
	}
	return c.strategy
}

// Increment adds one and returns the prior value.
func (c *Uint32) Increment() uint32 {
	return c.s().Increment32(&c.v)
}

// Decrement subtracts one and returns the prior value.
// Decrementing a zero counter panics with an underflow error.
func (c *Uint32) Decrement() uint32 {
	s := c.s()
	prior := s.Decrement32(&c.v)
	if prior == 0 {
		s.Increment32(&c.v)
		panic(errors.Underflow(32))
	}
	return prior
}

// Load returns the current value.
func (c *Uint32) Load() uint32 {
	return c.s().Load32(&c.v)
}

// Uint64 is a 64-bit counter. The zero value is ready to use with the
// Default strategy.
type Uint64 struct {
	v        uint64
	strategy Strategy
}

// NewUint64 returns a counter starting at initial that uses s, or Default if s is nil.
func NewUint64(initial uint64, s Strategy) *Uint64 {
	return &Uint64{v: initial, strategy: s}
}

func (c *Uint64) s() Strategy {
	if c.strategy == nil {
		return Default
	}
	return c.strategy
}

// Increment adds one and returns the prior value.
func (c *Uint64) Increment() uint64 {
	return c.s().Increment64(&c.v)
}

// Decrement subtracts one and returns the prior value.
// Decrementing a zero counter panics with an underflow error.
func (c *Uint64) Decrement() uint64 {
	s := c.s()
	prior := s.Decrement64(&c.v)
	if prior == 0 {
		s.Increment64(&c.v)
		panic(errors.Underflow(64))
	}
	return prior
}

// Load returns the current value.
func (c *Uint64) Load() uint64 {
	return c.s().Load64(&c.v)
}
