package dhcpv4

import (
	"bytes"
	"net"
)

// IPToBytes converts a net.IP to a 4-byte slice. Non-IPv4 addresses encode as
// 0.0.0.0.
func IPToBytes(ip net.IP) []byte {
	ip4 := ip.To4()
	if ip4 == nil {
		return []byte{0, 0, 0, 0}
	}
	return []byte(ip4)
}

// BytesToIP converts a 4-byte slice to net.IP. The result never aliases b.
func BytesToIP(b []byte) net.IP {
	if len(b) != net.IPv4len {
		return nil
	}
	return net.IPv4(b[0], b[1], b[2], b[3]).To4()
}

// IPListToBytes converts a slice of net.IP to bytes (N*4).
func IPListToBytes(ips []net.IP) []byte {
	buf := make([]byte, 0, len(ips)*net.IPv4len)
	for _, ip := range ips {
		buf = append(buf, IPToBytes(ip)...)
	}
	return buf
}

// putIP writes ip into the 4-byte field dst.
func putIP(dst []byte, ip net.IP) {
	copy(dst, IPToBytes(ip))
}

// putBytes copies src into the fixed-width field dst, truncating src and
// zero-filling whatever it does not cover.
func putBytes(dst, src []byte) {
	n := copy(dst, src)
	clear(dst[n:])
}

// cString returns the bytes of b up to the first NUL.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
