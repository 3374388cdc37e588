//go:build unix

package stream

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/parc/errors"
)

// unsyncable reports whether err means the descriptor cannot be synced:
// pipes and terminals give EINVAL on linux and ENOTSUP on darwin.
func unsyncable(err error) bool {
	return errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOTSUP)
}
