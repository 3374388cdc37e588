package object

import (
	"reflect"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/track"
)

// Object is a reference-counted handle around a payload of type T.
//
// The header (count, descriptor, identity) is private; callers reach the
// payload through Value and manage lifetime through Acquire and Release.
// A new object starts with one reference owned by its creator.
type Object[T any] struct {
	refs   uint64
	rt     *Runtime
	class  *Class[T]
	id     ulid.ULID
	handle track.Handle
	dead   atomic.Bool
	value  T
}

// Ref is the type-erased view of an Object, for holders that manage a
// reference without knowing the payload type.
type Ref interface {
	// ID returns the object's unique identifier.
	ID() ulid.ULID
	// Kind returns the descriptor name, or the payload's Go type.
	Kind() string
	// References returns the current reference count.
	References() uint64
	// Alive reports whether the object has not been destroyed.
	Alive() bool
	// Runtime returns the runtime that created the object.
	Runtime() *Runtime

	retain() bool
	drop()
	isNil() bool
}

// New allocates an object with a zeroed payload and a reference count of
// one. init, if non-nil, runs on the payload before the handle is returned.
// A nil rt means Default(); a nil class means the payload's own interfaces
// and the defaults describe it.
func New[T any](rt *Runtime, class *Class[T], init func(*T)) *Object[T] {
	if rt == nil {
		rt = Default()
	}
	o := &Object[T]{
		refs:  1,
		rt:    rt,
		class: class,
		id:    ulid.Make(),
	}
	if init != nil {
		init(&o.value)
	}
	o.handle = rt.created(o)
	return o
}

// Acquire adds a reference and returns the same handle.
func Acquire[T any](o *Object[T]) *Object[T] {
	return o.Acquire()
}

// Acquire adds a reference and returns the same handle, so that
// assignments like `held := obj.Acquire()` read naturally.
func (o *Object[T]) Acquire() *Object[T] {
	if o == nil {
		Default().Violation(errors.NilHandle(errors.PhaseAcquire, typeName[T]()))
		return nil
	}
	if !o.retain() {
		return nil
	}
	return o
}

func (o *Object[T]) retain() bool {
	if o == nil {
		Default().Violation(errors.NilHandle(errors.PhaseAcquire, typeName[T]()))
		return false
	}
	s := o.rt.strategy
	for {
		prior := s.Load64(&o.refs)
		if prior == 0 {
			o.rt.Violation(errors.UseAfterRelease(errors.PhaseAcquire, describe(o)))
			return false
		}
		if s.CompareAndSwap64(&o.refs, prior, prior+1) {
			return true
		}
	}
}

// Release drops the reference held in *ref and sets *ref to nil. When the
// dropped reference was the last one the object's destructor runs exactly
// once and the payload is cleared.
//
// Passing a nil pointer, a nil handle, or a handle with no outstanding
// references is a contract violation.
func Release[T any](ref **Object[T]) {
	if ref == nil || *ref == nil {
		Default().Violation(errors.NilHandle(errors.PhaseRelease, typeName[T]()))
		return
	}
	o := *ref
	*ref = nil
	o.drop()
}

// drop and retain never move the count through zero, so a stale handle
// can neither revive a destroyed object nor destroy it twice.
func (o *Object[T]) drop() {
	s := o.rt.strategy
	for {
		prior := s.Load64(&o.refs)
		if prior == 0 {
			o.rt.Violation(errors.OverRelease(describe(o)))
			return
		}
		if s.CompareAndSwap64(&o.refs, prior, prior-1) {
			if prior == 1 {
				o.destroy()
			}
			return
		}
	}
}

func (o *Object[T]) destroy() {
	o.dead.Store(true)
	o.class.destroy(&o.value)
	var zero T
	o.value = zero
	o.rt.destroyed(o, o.handle)
}

// Value returns the payload. Calling Value on a destroyed object is a
// contract violation and yields nil.
func (o *Object[T]) Value() *T {
	if o == nil {
		Default().Violation(errors.NilHandle(errors.PhaseDispatch, typeName[T]()))
		return nil
	}
	if o.dead.Load() {
		o.rt.Violation(errors.UseAfterRelease(errors.PhaseDispatch, describe(o)))
		return nil
	}
	return &o.value
}

// ID returns the object's unique identifier.
func (o *Object[T]) ID() ulid.ULID {
	return o.id
}

// Kind returns the descriptor name, or the payload's Go type.
func (o *Object[T]) Kind() string {
	if o.class != nil && o.class.Name != "" {
		return o.class.Name
	}
	return typeName[T]()
}

// References returns the current reference count.
func (o *Object[T]) References() uint64 {
	return o.rt.strategy.Load64(&o.refs)
}

// Alive reports whether the object has not been destroyed.
func (o *Object[T]) Alive() bool {
	return o != nil && !o.dead.Load()
}

// Runtime returns the runtime that created the object.
func (o *Object[T]) Runtime() *Runtime {
	return o.rt
}

// String implements fmt.Stringer through the ToString hook.
func (o *Object[T]) String() string {
	return ToString(o)
}

func (o *Object[T]) isNil() bool { return o == nil }

// AcquireRef adds a reference through the erased interface and returns r.
func AcquireRef(r Ref) Ref {
	if r == nil || r.isNil() {
		Default().Violation(errors.NilHandle(errors.PhaseAcquire, "object.Ref"))
		return nil
	}
	if !r.retain() {
		return nil
	}
	return r
}

// ReleaseRef drops the reference held in *ref and sets *ref to nil.
func ReleaseRef(ref *Ref) {
	if ref == nil || *ref == nil || (*ref).isNil() {
		Default().Violation(errors.NilHandle(errors.PhaseRelease, "object.Ref"))
		return
	}
	r := *ref
	*ref = nil
	r.drop()
}

// As returns r as a typed handle when its payload is T.
func As[T any](r Ref) (*Object[T], bool) {
	o, ok := r.(*Object[T])
	return o, ok && o != nil
}

func describe(r Ref) string {
	return r.Kind() + "@" + r.ID().String()
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
