package dhcpv4

// rawPacket builds a BOOTREQUEST by hand: a header with xid 0xDEADBEEF and a
// test MAC, the magic cookie, then opts verbatim, zero-padded to 300 bytes.
func rawPacket(opts ...byte) []byte {
	buf := make([]byte, HeaderSize, MaxPacketSize)
	buf[0] = byte(OpCodeBootRequest)
	buf[1] = byte(HardwareTypeEthernet)
	buf[2] = EthernetAddrLen
	buf[4], buf[5], buf[6], buf[7] = 0xDE, 0xAD, 0xBE, 0xEF
	copy(buf[28:], []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55})
	buf = append(buf, MagicCookie[:]...)
	buf = append(buf, opts...)
	for len(buf) < MinPacketSize {
		buf = append(buf, 0)
	}
	return buf
}

// optionsRegion returns a 64-byte options region holding opts after the
// cookie.
func optionsRegion(opts ...byte) []byte {
	return rawPacket(opts...)[HeaderSize:]
}
