package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setSockopts allows several listeners on :67, enables broadcast sends and
// pins the socket to iface when one is given.
func setSockopts(fd uintptr, iface string) error {
	s := int(fd)
	if err := unix.SetsockoptInt(s, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("setting SO_REUSEADDR: %w", err)
	}
	if err := unix.SetsockoptInt(s, unix.SOL_SOCKET, unix.SO_BROADCAST, 1); err != nil {
		return fmt.Errorf("setting SO_BROADCAST: %w", err)
	}
	if iface != "" {
		if err := unix.BindToDevice(s, iface); err != nil {
			return fmt.Errorf("setting SO_BINDTODEVICE %s: %w", iface, err)
		}
	}
	return nil
}
