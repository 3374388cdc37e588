// Package iface binds a private instance to a table of operations.
//
// A wrapper is itself a managed object whose payload is an Interface[T]:
// the private instance it holds one reference to, and the operation table T
// that knows how to act on it. Polymorphic types such as streams and
// reporters are wrappers with their own table type:
//
//	type Operations interface {
//	    Write(private object.Ref, buf *object.Object[buffer.Buffer]) (int, error)
//	}
//
//	s := iface.Wrap(rt, streamClass, file, fileOps)
//	defer object.Release(&s)
//
// Wrap acquires the private instance and the wrapper's destructor releases
// it, so the private instance's destructor runs only when no wrapper or
// other holder references it. Tables implementing Lifecycle take over that
// acquire and release.
package iface
