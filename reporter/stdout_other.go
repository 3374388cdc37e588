//go:build !unix

package reporter

import (
	"os"

	"github.com/wippyai/parc/object"
	"github.com/wippyai/parc/stream"
)

func stdoutStream(rt *object.Runtime) (*stream.Stream, error) {
	return stream.NewWriter(rt, os.Stdout)
}
