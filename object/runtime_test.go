package object

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/parc/counter"
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/track"
)

func TestNewRuntime_Defaults(t *testing.T) {
	rt, err := NewRuntime(nil)
	if err != nil {
		t.Fatal(err)
	}
	if rt.Name() != "default" {
		t.Errorf("Name() = %q", rt.Name())
	}
	if rt.Strategy() != counter.Default {
		t.Error("Strategy() should default to counter.Default")
	}
	if rt.Table() != nil || rt.Live() != nil {
		t.Error("tracking should be off by default")
	}
	if rt.Logger() == nil {
		t.Error("Logger() should never be nil")
	}
}

func TestRuntime_TrackAllocations(t *testing.T) {
	rt, _ := newTestRuntime(t, Config{TrackAllocations: true})
	obs := &eventRecorder{}
	rt.Table().Subscribe(obs)

	a := New[int](rt, &Class[int]{Name: "a"}, nil)
	b := New[string](rt, &Class[string]{Name: "b"}, nil)

	live := rt.Live()
	if len(live) != 2 {
		t.Fatalf("Live() = %d entries, want 2", len(live))
	}
	if ref, ok := live[0].Value.(Ref); !ok || ref.ID() != a.ID() {
		t.Errorf("first live entry is not a: %+v", live[0])
	}

	var report bytes.Buffer
	if n := rt.ReportOutstanding(&report); n != 2 {
		t.Errorf("ReportOutstanding() = %d, want 2", n)
	}
	if !strings.Contains(report.String(), "a@"+a.ID().String()+" refs=1") {
		t.Errorf("report missing a:\n%s", report.String())
	}

	Release(&a)
	Release(&b)
	if len(rt.Live()) != 0 {
		t.Errorf("Live() after release = %v", rt.Live())
	}
	if len(obs.events) != 4 {
		t.Fatalf("observer saw %d events, want 4", len(obs.events))
	}
	if obs.events[2].Type != track.EventDestroyed || obs.events[2].Kind != "a" {
		t.Errorf("unexpected event: %+v", obs.events[2])
	}
}

type eventRecorder struct {
	events []track.Event
}

func (r *eventRecorder) OnObjectEvent(e track.Event) {
	r.events = append(r.events, e)
}

func TestRuntime_ReportOutstandingWithoutTracking(t *testing.T) {
	rt, _ := newTestRuntime(t, Config{})
	a := New[int](rt, nil, nil)
	defer Release(&a)

	var report bytes.Buffer
	if n := rt.ReportOutstanding(&report); n != 1 {
		t.Errorf("ReportOutstanding() = %d, want 1", n)
	}
	if !strings.Contains(report.String(), "tracking disabled") {
		t.Errorf("unexpected report: %q", report.String())
	}
}

func TestRuntime_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt, rec := newTestRuntime(t, Config{Name: "metrics", Registerer: reg})
	class := &Class[int]{Name: "widget"}

	a := New(rt, class, nil)
	b := New(rt, class, nil)
	Release(&a)

	m := rt.metrics
	if got := testutil.ToFloat64(m.created.WithLabelValues("widget")); got != 2 {
		t.Errorf("created_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.destroyed.WithLabelValues("widget")); got != 1 {
		t.Errorf("destroyed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.live.WithLabelValues("widget")); got != 1 {
		t.Errorf("live = %v, want 1", got)
	}

	stale := b
	Release(&b)
	Release(&stale)
	if len(rec.kinds()) != 1 {
		t.Fatalf("expected one violation, got %v", rec.kinds())
	}
	if got := testutil.ToFloat64(m.violations.WithLabelValues(string(errors.KindOverRelease))); got != 1 {
		t.Errorf("violations_total = %v, want 1", got)
	}

	count, err := testutil.GatherAndCount(reg, "parc_object_created_total", "parc_object_live")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("gathered %d series, want 2", count)
	}
}

func TestRuntime_MetricsAdoptExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt1, _ := newTestRuntime(t, Config{Name: "shared", Registerer: reg})
	rt2, _ := newTestRuntime(t, Config{Name: "shared", Registerer: reg})

	a := New(rt1, &Class[int]{Name: "x"}, nil)
	b := New(rt2, &Class[int]{Name: "x"}, nil)
	defer Release(&a)
	defer Release(&b)

	if got := testutil.ToFloat64(rt1.metrics.live.WithLabelValues("x")); got != 2 {
		t.Errorf("shared live gauge = %v, want 2", got)
	}
}

func TestRuntime_ViolationIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rt, rec := newTestRuntime(t, Config{Name: "logged", Logger: zap.New(core)})

	a := New[int](rt, &Class[int]{Name: "thing"}, nil)
	stale := a
	Release(&a)
	Release(&stale)

	if len(rec.kinds()) != 1 {
		t.Fatalf("violations = %v", rec.kinds())
	}
	entries := logs.FilterMessage("contract violation").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d violations, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["kind"] != string(errors.KindOverRelease) || fields["runtime"] != "logged" {
		t.Errorf("unexpected log fields: %v", fields)
	}
	if !strings.HasPrefix(fields["object"].(string), "thing@") {
		t.Errorf("object field = %v", fields["object"])
	}
}

func TestRuntime_DestroyIsTracedAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rt, _ := newTestRuntime(t, Config{Logger: zap.New(core)})

	a := New[int](rt, &Class[int]{Name: "traced"}, nil)
	id := a.ID().String()
	Release(&a)

	entries := logs.FilterMessage("object destroyed").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d destroys, want 1", len(entries))
	}
	if entries[0].ContextMap()["id"] != id {
		t.Errorf("id field = %v, want %s", entries[0].ContextMap()["id"], id)
	}
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	old := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(old)

	rt, _ := newTestRuntime(t, Config{})
	rt.Violation(errors.OverRelease("manual@x"))

	if logs.Len() != 1 {
		t.Errorf("package logger saw %d entries, want 1", logs.Len())
	}
}
