package reporter

import (
	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/iface"
	"github.com/wippyai/parc/logentry"
	"github.com/wippyai/parc/object"
)

type filter struct {
	threshold logentry.Level
}

func (f *filter) Report(r *Reporter, entry *object.Object[logentry.Entry]) error {
	if !entry.Value().Level().Enabled(f.threshold) {
		return nil
	}
	next, ok := iface.PrivateAs[iface.Interface[Operations]](r)
	if !ok {
		return errors.TypeMismatch(errors.PhaseReport, "reporter", kindOf(PrivateObject(r)))
	}
	return Report(next, entry)
}

// NewFilter returns a reporter that forwards entries at or above threshold
// to next and drops the rest. LevelOff drops everything.
func NewFilter(rt *object.Runtime, next *Reporter, threshold logentry.Level) (*Reporter, error) {
	if !next.Alive() {
		return nil, errors.InvalidInput(errors.PhaseCreate, "nil or released reporter")
	}
	return New(rt, next, &filter{threshold: threshold}), nil
}
