// +build !windows

package server

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// setReuseAddr sets SO_REUSEADDR on the listening socket before bind, the
// same option crackserver.c sets explicitly via setsockopt() (spec.md
// §4.2). Go's listener already defaults to this on most platforms, but the
// spec calls the option out by name, so it's set here rather than relied
// on implicitly.
func setReuseAddr(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
