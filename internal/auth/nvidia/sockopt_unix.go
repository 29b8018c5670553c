//go:build !windows

package nvidia

import "syscall"

// reuseAddr sets SO_REUSEADDR on the callback listener socket so a fresh
// login attempt can rebind a candidate port that is still in TIME_WAIT from
// the previous one.
func reuseAddr(network, address string, c syscall.RawConn) error {
	var sockErr error
	if err := c.Control(func(fd uintptr) {
		sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return sockErr
}
