//go:build unix

package reporter

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/object"
	"github.com/wippyai/parc/stream"
)

// stdoutStream duplicates the stdout descriptor so that releasing the
// stream never closes the process's own stdout.
func stdoutStream(rt *object.Runtime) (*stream.Stream, error) {
	fd, err := unix.Dup(int(os.Stdout.Fd()))
	if err != nil {
		return nil, errors.IO(errors.PhaseCreate, "dup stdout", err)
	}
	unix.CloseOnExec(fd)
	return stream.NewFileDescriptor(rt, uintptr(fd))
}
