package dhcpv4

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"
	"time"
)

// Builder assembles a message in a buffer of fixed capacity. The buffer
// never grows past that capacity, so a MutableHeader taken from Header stays
// valid for the life of the message.
//
// Errors are sticky: the first failure is kept, later appends do nothing,
// and Finish reports it.
type Builder struct {
	buf    []byte
	size   int
	cookie bool
	err    error
}

// NewBuilder returns a builder sized for an Ethernet MTU.
func NewBuilder() *Builder {
	return NewBuilderSize(MaxPacketSize)
}

// NewBuilderSize returns a builder that holds at most n bytes. n is raised to
// MinPacketSize if smaller.
func NewBuilderSize(n int) *Builder {
	if n < MinPacketSize {
		n = MinPacketSize
	}
	b := &Builder{size: n}
	b.Reset()
	return b
}

// Reset discards the current message and starts over with a default header.
func (b *Builder) Reset() {
	if b.buf == nil {
		b.buf = make([]byte, HeaderSize, b.size)
	} else {
		b.buf = b.buf[:HeaderSize]
	}
	b.Header().ResetToDefault()
	b.cookie = false
	b.err = nil
}

// Header returns a writable view over the header bytes.
func (b *Builder) Header() MutableHeader {
	return MutableHeader{Header{b: b.buf[:HeaderSize:HeaderSize]}}
}

// Options returns the append cursor for the options region.
func (b *Builder) Options() *OptionsBuilder {
	return &OptionsBuilder{b: b}
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return len(b.buf) }

// Cap returns the fixed capacity of the buffer.
func (b *Builder) Cap() int { return b.size }

// Err returns the first construction error, if any.
func (b *Builder) Err() error { return b.err }

// Finish zero-pads the message to MinPacketSize and returns it. The slice
// still belongs to the builder and is overwritten by the next Reset.
func (b *Builder) Finish() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if n := len(b.buf); n < MinPacketSize {
		b.buf = b.buf[:MinPacketSize]
		clear(b.buf[n:])
	}
	return b.buf, nil
}

// FinishOwned is Finish, but the returned slice is handed to the caller and
// the builder starts over on a freshly allocated buffer.
func (b *Builder) FinishOwned() ([]byte, error) {
	out, err := b.Finish()
	if err != nil {
		return nil, err
	}
	b.buf = nil
	b.Reset()
	return out, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) write(p ...byte) {
	if b.err != nil {
		return
	}
	if len(b.buf)+len(p) > b.size {
		b.fail(fmt.Errorf("%w: %d + %d > %d", ErrBufferFull, len(b.buf), len(p), b.size))
		return
	}
	b.buf = append(b.buf, p...)
}

// OptionsBuilder appends options to a Builder. The magic cookie goes first;
// every other method fails with ErrCookieOrder until it is written.
type OptionsBuilder struct {
	b *Builder
}

// AddMagicCookie writes 99.130.83.99. It must be the first write after the
// header and may happen only once.
func (o *OptionsBuilder) AddMagicCookie() *OptionsBuilder {
	if o.b.cookie || len(o.b.buf) != HeaderSize {
		o.b.fail(ErrCookieOrder)
		return o
	}
	o.b.write(MagicCookie[:]...)
	o.b.cookie = o.b.err == nil
	return o
}

// AddBytes writes a raw TLV. PAD and END are written as their single byte
// and value is ignored.
func (o *OptionsBuilder) AddBytes(code OptionCode, value []byte) *OptionsBuilder {
	if o.b.err != nil {
		return o
	}
	if !o.b.cookie {
		o.b.fail(ErrCookieOrder)
		return o
	}
	if code == OptionPad || code == OptionEnd {
		o.b.write(byte(code))
		return o
	}
	if len(value) > MaxOptionLen {
		o.b.fail(fmt.Errorf("%w: %s is %d bytes", ErrOptionTooLong, code, len(value)))
		return o
	}
	if len(o.b.buf)+2+len(value) > o.b.size {
		o.b.fail(fmt.Errorf("%w: %s does not fit", ErrBufferFull, code))
		return o
	}
	o.b.buf = append(o.b.buf, byte(code), byte(len(value)))
	o.b.buf = append(o.b.buf, value...)
	return o
}

func (o *OptionsBuilder) AddIP(code OptionCode, ip net.IP) *OptionsBuilder {
	return o.AddBytes(code, IPToBytes(ip))
}

func (o *OptionsBuilder) AddIPs(code OptionCode, ips ...net.IP) *OptionsBuilder {
	return o.AddBytes(code, IPListToBytes(ips))
}

func (o *OptionsBuilder) AddMessageType(t MessageType) *OptionsBuilder {
	return o.AddBytes(OptionDHCPMessageType, []byte{byte(t)})
}

func (o *OptionsBuilder) AddSubnetMask(mask net.IPMask) *OptionsBuilder {
	return o.AddIP(OptionSubnetMask, net.IP(mask))
}

func (o *OptionsBuilder) AddRouters(ips ...net.IP) *OptionsBuilder {
	return o.AddIPs(OptionRouter, ips...)
}

// AddLeaseTime writes d in whole seconds. Durations past the u32 range are
// written as 0xffffffff, which clients read as infinite.
func (o *OptionsBuilder) AddLeaseTime(d time.Duration) *OptionsBuilder {
	secs := d / time.Second
	var v [4]byte
	switch {
	case secs < 0:
	case secs > math.MaxUint32:
		binary.BigEndian.PutUint32(v[:], math.MaxUint32)
	default:
		binary.BigEndian.PutUint32(v[:], uint32(secs))
	}
	return o.AddBytes(OptionIPLeaseTime, v[:])
}

func (o *OptionsBuilder) AddDomainNameServers(ips ...net.IP) *OptionsBuilder {
	return o.AddIPs(OptionDomainNameServer, ips...)
}

func (o *OptionsBuilder) AddServerIdentifier(ip net.IP) *OptionsBuilder {
	return o.AddIP(OptionServerIdentifier, ip)
}

func (o *OptionsBuilder) AddRequestedIP(ip net.IP) *OptionsBuilder {
	return o.AddIP(OptionRequestedIP, ip)
}

func (o *OptionsBuilder) AddHostName(name string) *OptionsBuilder {
	return o.AddBytes(OptionHostname, []byte(name))
}

func (o *OptionsBuilder) AddDomainName(name string) *OptionsBuilder {
	return o.AddBytes(OptionDomainName, []byte(name))
}

// AddEnd writes the END marker.
func (o *OptionsBuilder) AddEnd() *OptionsBuilder {
	return o.AddBytes(OptionEnd, nil)
}
