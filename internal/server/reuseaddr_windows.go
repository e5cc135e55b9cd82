// +build windows

package server

import "syscall"

// setReuseAddr is a no-op on Windows: SO_REUSEADDR has different (and
// dangerous) semantics there, so Go's listener defaults are used as-is,
// matching how the rest of this codebase (see logger) treats
// Windows as a reduced-functionality platform rather than porting
// Unix-specific socket/tty options across.
func setReuseAddr(_, _ string, _ syscall.RawConn) error {
	return nil
}
