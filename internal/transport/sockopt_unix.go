//go:build unix && !linux

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setSockopts has no SO_BINDTODEVICE here; Receive filters on the interface
// index instead.
func setSockopts(fd uintptr, _ string) error {
	s := int(fd)
	if err := unix.SetsockoptInt(s, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("setting SO_REUSEADDR: %w", err)
	}
	if err := unix.SetsockoptInt(s, unix.SOL_SOCKET, unix.SO_BROADCAST, 1); err != nil {
		return fmt.Errorf("setting SO_BROADCAST: %w", err)
	}
	return nil
}
