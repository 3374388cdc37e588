package reporter

import (
	"os"

	"golang.org/x/term"

	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/iface"
	"github.com/wippyai/parc/logentry"
	"github.com/wippyai/parc/object"
	"github.com/wippyai/parc/stream"
)

type textStream struct {
	formatter logentry.Formatter
}

func (t *textStream) Report(r *Reporter, entry *object.Object[logentry.Entry]) error {
	s, ok := iface.PrivateAs[iface.Interface[stream.Operations]](r)
	if !ok {
		return errors.TypeMismatch(errors.PhaseReport, "stream", kindOf(PrivateObject(r)))
	}
	buf, err := t.formatter.Format(r.Runtime(), entry)
	if err != nil {
		return reportError(s, err, "format entry")
	}
	defer object.Release(&buf)

	if _, err := stream.Write(s, buf); err != nil {
		return reportError(s, err, "write entry")
	}
	return nil
}

// NewTextStream returns a reporter that formats entries with f and writes
// each one to s in a single write. The reporter holds its own reference to
// s. A nil f means a plain Text formatter.
func NewTextStream(rt *object.Runtime, s *stream.Stream, f logentry.Formatter) (*Reporter, error) {
	if !s.Alive() {
		return nil, errors.InvalidInput(errors.PhaseCreate, "nil or released stream")
	}
	if f == nil {
		f = logentry.NewText(nil)
	}
	return New(rt, s, &textStream{formatter: f}), nil
}

// NewTextFile returns a text reporter writing to f, which it takes
// ownership of.
func NewTextFile(rt *object.Runtime, f *os.File, formatter logentry.Formatter) (*Reporter, error) {
	s, err := stream.NewFile(rt, f)
	if err != nil {
		return nil, err
	}
	defer stream.Release(&s)
	return NewTextStream(rt, s, formatter)
}

// NewTextStdout returns a text reporter writing to a duplicate of the
// process's standard output. Levels are colored when stdout is a terminal.
func NewTextStdout(rt *object.Runtime) (*Reporter, error) {
	s, err := stdoutStream(rt)
	if err != nil {
		return nil, err
	}
	defer stream.Release(&s)
	color := term.IsTerminal(int(os.Stdout.Fd()))
	return NewTextStream(rt, s, logentry.NewText(&logentry.TextOptions{Color: color}))
}

func reportError(s *stream.Stream, cause error, detail string) error {
	return errors.New(errors.PhaseReport, errors.KindIO).
		Object(s.Kind() + "@" + s.ID().String()).
		Cause(cause).
		Detail("%s", detail).
		Build()
}

func kindOf(r object.Ref) string {
	if r == nil {
		return "<nil>"
	}
	return r.Kind()
}
