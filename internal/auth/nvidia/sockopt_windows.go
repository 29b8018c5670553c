//go:build windows

package nvidia

import "syscall"

// reuseAddr sets SO_REUSEADDR on the callback listener socket so a fresh
// login attempt can rebind a candidate port that is still in TIME_WAIT from
// the previous one. Winsock startup and cleanup are owned by the Go runtime,
// so no per-call init/cleanup pairing is needed here.
func reuseAddr(network, address string, c syscall.RawConn) error {
	var sockErr error
	if err := c.Control(func(fd uintptr) {
		sockErr = syscall.SetsockoptInt(syscall.Handle(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return sockErr
}
