package object

import (
	"fmt"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/parc/counter"
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/track"
)

// Config holds configuration for runtime creation.
// The zero value is valid; nil fields take defaults.
type Config struct {
	// Logger receives destroy traces and violation reports.
	// nil means the package Logger().
	Logger *zap.Logger

	// Strategy performs reference count updates. nil means counter.Default.
	Strategy counter.Strategy

	// Registerer receives the runtime's collectors. nil disables metrics.
	Registerer prometheus.Registerer

	// OnViolation is called for every contract violation after it has been
	// logged and counted. nil means panic with the *errors.Error. If the
	// handler returns, the offending operation has no effect.
	//
	// Violations on nil handles, such as a second Release through the same
	// variable, carry no runtime. They go to Default() and are neither seen
	// by this handler nor counted in Violations().
	OnViolation func(*errors.Error)

	// Name labels metrics and log lines. Empty means "default".
	Name string

	// TrackAllocations records every live object in a track.Table so that
	// Live and ReportOutstanding can list them.
	TrackAllocations bool
}

// Runtime owns the policies shared by every object it creates: how counts
// are updated, how objects are accounted for, and what happens on misuse.
// Safe for concurrent use.
type Runtime struct {
	log         *zap.Logger
	strategy    counter.Strategy
	onViolation func(*errors.Error)
	table       *track.Table
	metrics     *metrics
	outstanding counter.Uint64
	violations  counter.Uint64
	name        string
}

var (
	defaultRuntime     *Runtime
	defaultRuntimeOnce sync.Once
)

// Default returns the process-wide runtime. It does not track allocations,
// exports no metrics and panics on contract violations.
func Default() *Runtime {
	defaultRuntimeOnce.Do(func() {
		defaultRuntime, _ = NewRuntime(nil)
	})
	return defaultRuntime
}

// NewRuntime creates a runtime with the given configuration.
func NewRuntime(cfg *Config) (*Runtime, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Runtime{
		log:         cfg.Logger,
		strategy:    cfg.Strategy,
		onViolation: cfg.OnViolation,
		name:        cfg.Name,
	}
	if r.strategy == nil {
		r.strategy = counter.Default
	}
	if r.name == "" {
		r.name = "default"
	}
	r.outstanding = *counter.NewUint64(0, r.strategy)
	r.violations = *counter.NewUint64(0, r.strategy)

	if cfg.TrackAllocations {
		r.table = track.NewTable()
	}

	if cfg.Registerer != nil {
		m := newMetrics(r.name)
		if err := m.register(cfg.Registerer); err != nil {
			return nil, err
		}
		r.metrics = m
	}

	return r, nil
}

// Name returns the runtime's label.
func (r *Runtime) Name() string {
	return r.name
}

// Logger returns the logger used by this runtime.
func (r *Runtime) Logger() *zap.Logger {
	if r.log != nil {
		return r.log
	}
	return Logger()
}

// Strategy returns the counting strategy used for reference counts.
func (r *Runtime) Strategy() counter.Strategy {
	return r.strategy
}

// Outstanding returns the number of objects created by this runtime that
// have not been destroyed.
func (r *Runtime) Outstanding() uint64 {
	return r.outstanding.Load()
}

// Violations returns the number of contract violations detected so far.
func (r *Runtime) Violations() uint64 {
	return r.violations.Load()
}

// Table returns the allocation table, or nil when tracking is disabled.
func (r *Runtime) Table() *track.Table {
	return r.table
}

// Live returns a snapshot of the live objects, or nil when tracking is
// disabled. Entry values are Refs.
func (r *Runtime) Live() []track.Entry {
	if r.table == nil {
		return nil
	}
	return r.table.Snapshot()
}

// ReportOutstanding writes one line per live tracked object to w and
// returns the number of outstanding objects.
func (r *Runtime) ReportOutstanding(w io.Writer) int {
	n := int(r.Outstanding())
	if r.table == nil {
		fmt.Fprintf(w, "%d outstanding objects (tracking disabled)\n", n)
		return n
	}
	r.table.Each(func(e track.Entry) bool {
		if ref, ok := e.Value.(Ref); ok {
			fmt.Fprintf(w, "%s refs=%d\n", describe(ref), ref.References())
		}
		return true
	})
	return n
}

// Violation reports a contract violation. It never returns when the runtime
// uses the default handler.
func (r *Runtime) Violation(err *errors.Error) {
	r.violations.Increment()
	if r.metrics != nil {
		r.metrics.violation(err.Kind)
	}
	r.Logger().Error("contract violation",
		zap.String("runtime", r.name),
		zap.String("phase", string(err.Phase)),
		zap.String("kind", string(err.Kind)),
		zap.String("object", err.Object),
		zap.Error(err))

	if r.onViolation != nil {
		r.onViolation(err)
		return
	}
	panic(err)
}

func (r *Runtime) created(ref Ref) track.Handle {
	r.outstanding.Increment()
	kind := ref.Kind()
	if r.metrics != nil {
		r.metrics.objectCreated(kind)
	}
	if r.table != nil {
		return r.table.Insert(kind, ref)
	}
	return 0
}

func (r *Runtime) destroyed(ref Ref, h track.Handle) {
	kind := ref.Kind()
	if r.table != nil {
		r.table.Remove(h)
	}
	if r.metrics != nil {
		r.metrics.objectDestroyed(kind)
	}
	r.outstanding.Decrement()

	if ce := r.Logger().Check(zap.DebugLevel, "object destroyed"); ce != nil {
		ce.Write(
			zap.String("runtime", r.name),
			zap.String("kind", kind),
			zap.Stringer("id", ref.ID()))
	}
}
