package reporter

import (
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/iface"
	"github.com/wippyai/parc/logentry"
	"github.com/wippyai/parc/object"
)

// Operations is the operation table of a reporter backend. Report receives
// the reporter itself so backends can reach their private instance.
type Operations interface {
	Report(r *Reporter, entry *object.Object[logentry.Entry]) error
}

// Reporter is a managed polymorphic log sink.
type Reporter = iface.Wrapper[Operations]

var class = &object.Class[iface.Interface[Operations]]{Name: "reporter"}

// New wraps private with ops. The reporter holds its own reference to
// private.
func New(rt *object.Runtime, private object.Ref, ops Operations) *Reporter {
	return iface.Wrap(rt, class, private, ops)
}

// Report hands entry to r's backend.
func Report(r *Reporter, entry *object.Object[logentry.Entry]) error {
	if !object.MustBeAlive(entry, errors.PhaseReport) {
		return errors.New(errors.PhaseReport, errors.KindContractViolation).
			Detail("report of released entry").
			Build()
	}
	return iface.Invoke(r, func(ops Operations, _ object.Ref) error {
		return ops.Report(r, entry)
	})
}

// ReportString reports msg at level with default header fields.
func ReportString(r *Reporter, level logentry.Level, msg string) error {
	if !object.MustBeAlive(r, errors.PhaseReport) {
		return errors.New(errors.PhaseReport, errors.KindContractViolation).
			Detail("report on released reporter").
			Build()
	}
	entry := logentry.NewString(r.Runtime(), level, msg, nil)
	defer object.Release(&entry)
	return Report(r, entry)
}

// PrivateObject returns r's private instance without adding a reference.
func PrivateObject(r *Reporter) object.Ref {
	return iface.Private(r)
}

// Acquire adds a reference to r.
func Acquire(r *Reporter) *Reporter {
	return r.Acquire()
}

// Release drops the reference in *r and sets it to nil. Nested streams and
// reporters are released with the last reporter reference.
func Release(r **Reporter) {
	object.Release(r)
}
