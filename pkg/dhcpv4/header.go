package dhcpv4

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Header is a read-only view over the 236-byte fixed header of a message.
// It borrows its bytes; slices it returns alias the underlying buffer.
type Header struct {
	b []byte
}

// NewHeader wraps b, which must be exactly HeaderSize bytes long.
func NewHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d", ErrHeaderSize, len(b))
	}
	return Header{b: b}, nil
}

// Bytes returns the raw header bytes.
func (h Header) Bytes() []byte { return h.b }

func (h Header) OpCode() OpCode { return OpCode(h.b[fieldOp.off]) }

func (h Header) HardwareType() HardwareType { return HardwareType(h.b[fieldHType.off]) }

func (h Header) HardwareLen() byte { return h.b[fieldHLen.off] }

func (h Header) Hops() byte { return h.b[fieldHops.off] }

// XID returns the transaction ID.
func (h Header) XID() uint32 { return binary.BigEndian.Uint32(fieldXID.in(h.b)) }

func (h Header) Secs() uint16 { return binary.BigEndian.Uint16(fieldSecs.in(h.b)) }

func (h Header) Flags() uint16 { return binary.BigEndian.Uint16(fieldFlags.in(h.b)) }

// IsBroadcast returns true if the broadcast flag is set.
func (h Header) IsBroadcast() bool { return h.Flags()&FlagBroadcast != 0 }

// CIAddr returns the client IP address.
func (h Header) CIAddr() net.IP { return BytesToIP(fieldCIAddr.in(h.b)) }

// YIAddr returns the 'your' (assigned) IP address.
func (h Header) YIAddr() net.IP { return BytesToIP(fieldYIAddr.in(h.b)) }

// SIAddr returns the next server IP address.
func (h Header) SIAddr() net.IP { return BytesToIP(fieldSIAddr.in(h.b)) }

// GIAddr returns the relay agent IP address.
func (h Header) GIAddr() net.IP { return BytesToIP(fieldGIAddr.in(h.b)) }

// CHAddr returns all 16 bytes of the client hardware address field.
func (h Header) CHAddr() []byte { return fieldCHAddr.in(h.b) }

// ClientHWAddr returns the significant part of chaddr, HardwareLen bytes
// clamped to the field width.
func (h Header) ClientHWAddr() net.HardwareAddr {
	n := int(h.HardwareLen())
	if n > fieldCHAddr.size {
		n = fieldCHAddr.size
	}
	return net.HardwareAddr(h.CHAddr()[:n])
}

// SName returns the raw 64-byte server host name field.
func (h Header) SName() []byte { return fieldSName.in(h.b) }

// File returns the raw 128-byte boot file name field.
func (h Header) File() []byte { return fieldFile.in(h.b) }

// ServerName returns sname up to its first NUL.
func (h Header) ServerName() string { return cString(h.SName()) }

// BootFileName returns file up to its first NUL.
func (h Header) BootFileName() string { return cString(h.File()) }

// MutableHeader is a writable view over the same layout. It embeds Header, so
// every read accessor is available on it too.
type MutableHeader struct {
	Header
}

// NewMutableHeader wraps b, which must be exactly HeaderSize bytes long.
func NewMutableHeader(b []byte) (MutableHeader, error) {
	h, err := NewHeader(b)
	if err != nil {
		return MutableHeader{}, err
	}
	return MutableHeader{Header: h}, nil
}

func (h MutableHeader) SetOpCode(op OpCode) { h.b[fieldOp.off] = byte(op) }

func (h MutableHeader) SetHardwareType(t HardwareType) { h.b[fieldHType.off] = byte(t) }

func (h MutableHeader) SetHardwareLen(n byte) { h.b[fieldHLen.off] = n }

func (h MutableHeader) SetHops(n byte) { h.b[fieldHops.off] = n }

func (h MutableHeader) SetXID(xid uint32) { binary.BigEndian.PutUint32(fieldXID.in(h.b), xid) }

func (h MutableHeader) SetSecs(secs uint16) { binary.BigEndian.PutUint16(fieldSecs.in(h.b), secs) }

func (h MutableHeader) SetFlags(flags uint16) {
	binary.BigEndian.PutUint16(fieldFlags.in(h.b), flags)
}

func (h MutableHeader) SetCIAddr(ip net.IP) { putIP(fieldCIAddr.in(h.b), ip) }

func (h MutableHeader) SetYIAddr(ip net.IP) { putIP(fieldYIAddr.in(h.b), ip) }

func (h MutableHeader) SetSIAddr(ip net.IP) { putIP(fieldSIAddr.in(h.b), ip) }

func (h MutableHeader) SetGIAddr(ip net.IP) { putIP(fieldGIAddr.in(h.b), ip) }

// SetCHAddr copies up to 16 bytes of addr into chaddr and zeroes the rest.
// It does not touch hlen.
func (h MutableHeader) SetCHAddr(addr []byte) { putBytes(fieldCHAddr.in(h.b), addr) }

// SetSName copies up to 64 bytes into sname, zero-filling the remainder.
func (h MutableHeader) SetSName(name []byte) { putBytes(fieldSName.in(h.b), name) }

// SetFile copies up to 128 bytes into file, zero-filling the remainder.
func (h MutableHeader) SetFile(name []byte) { putBytes(fieldFile.in(h.b), name) }

// ResetToDefault zeroes the header and sets the Ethernet client defaults:
// BOOTREQUEST, htype 1, hlen 6.
func (h MutableHeader) ResetToDefault() {
	clear(h.b)
	h.SetOpCode(OpCodeBootRequest)
	h.SetHardwareType(HardwareTypeEthernet)
	h.SetHardwareLen(EthernetAddrLen)
}
