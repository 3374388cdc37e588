package iface

import (
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/object"
)

// Lifecycle is optionally implemented by operation tables whose private
// instances need acquire/release semantics other than plain reference
// counting. Tables without it use object.AcquireRef and object.ReleaseRef.
type Lifecycle interface {
	AcquirePrivate(private object.Ref) object.Ref
	ReleasePrivate(private *object.Ref)
}

// Interface pairs a private instance with an operation table of type T.
// It is the payload of a wrapper object; the wrapper holds exactly one
// reference to the private instance for its whole lifetime.
type Interface[T any] struct {
	private object.Ref
	table   T
}

// Wrapper is the managed handle around an Interface.
type Wrapper[T any] = object.Object[Interface[T]]

// Wrap creates a wrapper object that holds its own reference to private and
// dispatches through table. The table is stored as given, so one table value
// may back any number of wrappers. class names the wrapper kind; it may be
// shared. A class that sets Destroy would keep Interface from releasing the
// private instance, so Wrap reports it as a contract violation and returns
// nil without touching private.
func Wrap[T any](rt *object.Runtime, class *object.Class[Interface[T]], private object.Ref, table T) *Wrapper[T] {
	if class != nil && class.Destroy != nil {
		if rt == nil {
			rt = object.Default()
		}
		rt.Violation(errors.New(errors.PhaseCreate, errors.KindContractViolation).
			GoType("object.Class[iface.Interface]").
			Detail("wrapper class %q overrides Destroy", class.Name).
			Build())
		return nil
	}
	if !object.MustBeAlive(private, errors.PhaseCreate) {
		return nil
	}
	held := acquirePrivate(table, private)
	if held == nil {
		return nil
	}
	return object.New(rt, class, func(i *Interface[T]) {
		i.private = held
		i.table = table
	})
}

// Destroy releases the wrapper's reference to its private instance through
// the table's Lifecycle, if any. The private instance's own destructor runs
// only if this was its last reference.
func (i *Interface[T]) Destroy() {
	if i.private == nil {
		return
	}
	if lc, ok := any(i.table).(Lifecycle); ok {
		lc.ReleasePrivate(&i.private)
		i.private = nil
		return
	}
	object.ReleaseRef(&i.private)
}

// Private returns the private instance without adding a reference.
func (i *Interface[T]) Private() object.Ref {
	return i.private
}

// Table returns the operation table.
func (i *Interface[T]) Table() T {
	return i.table
}

func acquirePrivate[T any](table T, private object.Ref) object.Ref {
	if lc, ok := any(table).(Lifecycle); ok {
		return lc.AcquirePrivate(private)
	}
	return object.AcquireRef(private)
}

// Invoke calls op with the wrapper's table and private instance. The wrapper
// adds no buffering or retry; op's error is returned as is. Invoking on a
// released wrapper is a contract violation.
func Invoke[T any](w *Wrapper[T], op func(table T, private object.Ref) error) error {
	i := w.Value()
	if i == nil {
		b := errors.New(errors.PhaseDispatch, errors.KindContractViolation).
			Detail("dispatch on released interface")
		if w != nil {
			b.Object(w.Kind() + "@" + w.ID().String())
		}
		return b.Build()
	}
	return op(i.table, i.private)
}

// Private returns the wrapper's private instance without adding a reference.
// Backends use it to reach their own backing resource.
func Private[T any](w *Wrapper[T]) object.Ref {
	i := w.Value()
	if i == nil {
		return nil
	}
	return i.private
}

// PrivateAs returns the private instance as a typed handle when its payload
// is P.
func PrivateAs[P, T any](w *Wrapper[T]) (*object.Object[P], bool) {
	r := Private(w)
	if r == nil {
		return nil, false
	}
	return object.As[P](r)
}

// Table returns the wrapper's operation table.
func Table[T any](w *Wrapper[T]) T {
	i := w.Value()
	if i == nil {
		var zero T
		return zero
	}
	return i.table
}
