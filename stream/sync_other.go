//go:build !unix

package stream

import (
	"syscall"

	"github.com/wippyai/parc/errors"
)

func unsyncable(err error) bool {
	return errors.Is(err, syscall.EINVAL)
}
