package iface

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/object"
)

type greeter interface {
	Greet(private object.Ref) (string, error)
}

type name struct {
	value     string
	destroyed *atomic.Int32
}

func (n *name) Destroy() {
	n.destroyed.Add(1)
}

type nameGreeter struct{}

func (nameGreeter) Greet(private object.Ref) (string, error) {
	n, ok := object.As[name](private)
	if !ok {
		return "", errors.TypeMismatch(errors.PhaseDispatch, "name", private.Kind())
	}
	return "hello " + n.Value().value, nil
}

// countingGreeter manages the private instance itself.
type countingGreeter struct {
	nameGreeter
	acquired, released atomic.Int32
}

func (g *countingGreeter) AcquirePrivate(private object.Ref) object.Ref {
	g.acquired.Add(1)
	return object.AcquireRef(private)
}

func (g *countingGreeter) ReleasePrivate(private *object.Ref) {
	g.released.Add(1)
	object.ReleaseRef(private)
}

var greeterClass = &object.Class[Interface[greeter]]{Name: "greeter"}

type recorder struct {
	errs []*errors.Error
}

func (r *recorder) record(err *errors.Error) { r.errs = append(r.errs, err) }

func newRuntime(t *testing.T) (*object.Runtime, *recorder) {
	t.Helper()
	rec := &recorder{}
	rt, err := object.NewRuntime(&object.Config{Name: t.Name(), OnViolation: rec.record})
	if err != nil {
		t.Fatal(err)
	}
	return rt, rec
}

func newName(rt *object.Runtime, v string, destroyed *atomic.Int32) *object.Object[name] {
	return object.New(rt, &object.Class[name]{Name: "name"}, func(n *name) {
		n.value = v
		n.destroyed = destroyed
	})
}

func greet(w *Wrapper[greeter]) (string, error) {
	var out string
	err := Invoke(w, func(table greeter, private object.Ref) error {
		var err error
		out, err = table.Greet(private)
		return err
	})
	return out, err
}

func TestWrap_HoldsPrivateReference(t *testing.T) {
	rt, rec := newRuntime(t)
	var destroyed atomic.Int32
	n := newName(rt, "world", &destroyed)
	before := n.References()

	w := Wrap[greeter](rt, greeterClass, n, nameGreeter{})
	if w == nil {
		t.Fatal("Wrap returned nil")
	}
	if n.References() != before+1 {
		t.Errorf("private References() = %d, want %d", n.References(), before+1)
	}
	if w.Kind() != "greeter" {
		t.Errorf("Kind() = %q", w.Kind())
	}

	got, err := greet(w)
	if err != nil || got != "hello world" {
		t.Errorf("greet() = %q, %v", got, err)
	}

	object.Release(&w)
	if n.References() != before {
		t.Errorf("private References() = %d after wrapper release, want %d", n.References(), before)
	}
	if destroyed.Load() != 0 {
		t.Error("private should survive while its creator holds it")
	}

	object.Release(&n)
	if destroyed.Load() != 1 {
		t.Errorf("private destroyed %d times, want 1", destroyed.Load())
	}
	if len(rec.errs) != 0 {
		t.Errorf("unexpected violations: %v", rec.errs)
	}
}

func TestWrap_TransfersOwnership(t *testing.T) {
	rt, _ := newRuntime(t)
	var destroyed atomic.Int32
	n := newName(rt, "owned", &destroyed)

	w := Wrap[greeter](rt, greeterClass, n, nameGreeter{})
	object.Release(&n)
	if destroyed.Load() != 0 {
		t.Fatal("wrapper reference should keep the private alive")
	}

	object.Release(&w)
	if destroyed.Load() != 1 {
		t.Errorf("private destroyed %d times, want 1", destroyed.Load())
	}
	if rt.Outstanding() != 0 {
		t.Errorf("Outstanding() = %d, want 0", rt.Outstanding())
	}
}

func TestWrap_LifecycleTable(t *testing.T) {
	rt, _ := newRuntime(t)
	var destroyed atomic.Int32
	n := newName(rt, "lifecycle", &destroyed)
	table := &countingGreeter{}

	w := Wrap[greeter](rt, greeterClass, n, table)
	object.Release(&n)
	if table.acquired.Load() != 1 {
		t.Errorf("AcquirePrivate called %d times, want 1", table.acquired.Load())
	}

	if got, _ := greet(w); got != "hello lifecycle" {
		t.Errorf("greet() = %q", got)
	}

	object.Release(&w)
	if table.released.Load() != 1 {
		t.Errorf("ReleasePrivate called %d times, want 1", table.released.Load())
	}
	if destroyed.Load() != 1 {
		t.Errorf("private destroyed %d times, want 1", destroyed.Load())
	}
}

func TestWrap_SharedTable(t *testing.T) {
	rt, _ := newRuntime(t)
	var destroyed atomic.Int32
	table := nameGreeter{}

	na, nb := newName(rt, "a", &destroyed), newName(rt, "b", &destroyed)
	a := Wrap[greeter](rt, greeterClass, na, table)
	b := Wrap[greeter](rt, greeterClass, nb, table)
	object.Release(&na)
	object.Release(&nb)

	ga, _ := greet(a)
	gb, _ := greet(b)
	if ga != "hello a" || gb != "hello b" {
		t.Errorf("greet() = %q, %q", ga, gb)
	}

	object.Release(&a)
	object.Release(&b)
	if destroyed.Load() != 2 || rt.Outstanding() != 0 {
		t.Errorf("destroyed = %d, outstanding = %d", destroyed.Load(), rt.Outstanding())
	}
}

func TestWrap_DestroyedPrivate(t *testing.T) {
	rt, rec := newRuntime(t)
	var destroyed atomic.Int32
	n := newName(rt, "gone", &destroyed)
	stale := n
	object.Release(&n)

	if w := Wrap[greeter](rt, greeterClass, stale, nameGreeter{}); w != nil {
		t.Error("Wrap over a destroyed private should return nil")
	}
	if len(rec.errs) != 1 || rec.errs[0].Kind != errors.KindUseAfterRelease {
		t.Errorf("violations = %v", rec.errs)
	}
}

func TestInvoke_ReleasedWrapper(t *testing.T) {
	rt, rec := newRuntime(t)
	var destroyed atomic.Int32
	n := newName(rt, "x", &destroyed)
	w := Wrap[greeter](rt, greeterClass, n, nameGreeter{})
	object.Release(&n)
	stale := w
	object.Release(&w)

	called := false
	err := Invoke(stale, func(greeter, object.Ref) error {
		called = true
		return nil
	})
	if called {
		t.Error("operation ran on a released wrapper")
	}
	if !errors.IsContractViolation(err) {
		t.Errorf("Invoke() error = %v, want contract violation", err)
	}
	var perr *errors.Error
	if !errors.As(err, &perr) || perr.Object != "greeter@"+stale.ID().String() {
		t.Errorf("error should name the released wrapper: %v", err)
	}
	if len(rec.errs) != 1 {
		t.Errorf("violations = %v", rec.errs)
	}
}

func TestInvoke_PropagatesError(t *testing.T) {
	rt, _ := newRuntime(t)
	wrong := object.New(rt, nil, func(v *int) { *v = 1 })
	w := Wrap[greeter](rt, greeterClass, wrong, nameGreeter{})
	object.Release(&wrong)
	defer object.Release(&w)

	_, err := greet(w)
	var perr *errors.Error
	if !errors.As(err, &perr) || perr.Kind != errors.KindTypeMismatch {
		t.Fatalf("greet() error = %v, want type mismatch", err)
	}
	if !strings.Contains(err.Error(), "int") {
		t.Errorf("error should name the actual kind: %v", err)
	}
}

func TestAccessors(t *testing.T) {
	rt, _ := newRuntime(t)
	var destroyed atomic.Int32
	n := newName(rt, "acc", &destroyed)
	w := Wrap[greeter](rt, greeterClass, n, nameGreeter{})
	defer object.Release(&w)
	defer object.Release(&n)

	if Private(w) != object.Ref(n) {
		t.Error("Private() should return the wrapped instance")
	}
	typed, ok := PrivateAs[name](w)
	if !ok || typed != n {
		t.Error("PrivateAs[name] should recover the typed handle")
	}
	if _, ok := PrivateAs[int](w); ok {
		t.Error("PrivateAs with the wrong payload type should fail")
	}
	if _, ok := Table(w).(nameGreeter); !ok {
		t.Errorf("Table() = %T", Table(w))
	}
	if w.Value().Private() != object.Ref(n) {
		t.Error("Interface.Private() mismatch")
	}
}

func TestWrap_RejectsClassDestroy(t *testing.T) {
	rt, rec := newRuntime(t)
	var destroyed atomic.Int32
	n := newName(rt, "kept", &destroyed)
	before := n.References()

	overriding := &object.Class[Interface[greeter]]{
		Name:    "greeter",
		Destroy: func(*Interface[greeter]) {},
	}
	if w := Wrap[greeter](rt, overriding, n, nameGreeter{}); w != nil {
		t.Fatal("Wrap should refuse a class that overrides Destroy")
	}
	if n.References() != before {
		t.Errorf("private References() = %d, want %d", n.References(), before)
	}
	if len(rec.errs) != 1 || rec.errs[0].Kind != errors.KindContractViolation || rec.errs[0].Phase != errors.PhaseCreate {
		t.Fatalf("violations = %v", rec.errs)
	}
	if !strings.Contains(rec.errs[0].Detail, `"greeter"`) {
		t.Errorf("detail should name the class: %q", rec.errs[0].Detail)
	}

	object.Release(&n)
	if destroyed.Load() != 1 || rt.Outstanding() != 0 {
		t.Errorf("destroyed = %d, outstanding = %d", destroyed.Load(), rt.Outstanding())
	}
}

func TestWrap_PrivateCountRestoredAfterWrapperDestroy(t *testing.T) {
	for _, tc := range []struct {
		name  string
		table greeter
	}{
		{"plain table", nameGreeter{}},
		{"lifecycle table", &countingGreeter{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rt, _ := newRuntime(t)
			var destroyed atomic.Int32
			n := newName(rt, "count", &destroyed)
			before := n.References()

			w := Wrap(rt, greeterClass, n, tc.table)
			held := w.Acquire()
			object.Release(&w)
			if n.References() != before+1 {
				t.Fatalf("private References() = %d while wrapper held", n.References())
			}
			object.Release(&held)
			if n.References() != before {
				t.Errorf("private References() = %d after wrapper destroyed, want %d", n.References(), before)
			}
			object.Release(&n)
		})
	}
}
