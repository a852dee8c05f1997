//go:build unix

package celadon

import (
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

// readable waits up to timeout for fd to have input.
func readable(fd int, timeout time.Duration) (bool, error) {
	var set unix.FdSet
	set.Zero()
	set.Set(fd)

	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(fd+1, &set, nil, nil, &tv)
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func notifyResize(c chan os.Signal) {
	signal.Notify(c, unix.SIGWINCH)
}
