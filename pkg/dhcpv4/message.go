package dhcpv4

import (
	"fmt"
)

// Message is a borrowed view over a complete DHCPv4 datagram: the fixed
// header followed by the options region.
type Message struct {
	b []byte
}

// NewMessage wraps b. It fails unless b holds at least MinPacketSize bytes,
// and reads nothing from b in that case.
func NewMessage(b []byte) (Message, error) {
	if len(b) < MinPacketSize {
		return Message{}, fmt.Errorf("%w: got %d", ErrShortMessage, len(b))
	}
	return Message{b: b}, nil
}

// Header returns a view over the first HeaderSize bytes.
func (m Message) Header() Header {
	return Header{b: m.b[:HeaderSize:HeaderSize]}
}

// Options returns a view over everything after the header.
func (m Message) Options() Options {
	return Options{b: m.b[HeaderSize:]}
}

// Bytes returns the underlying datagram.
func (m Message) Bytes() []byte { return m.b }

// Clone returns a message backed by its own copy of the bytes.
func (m Message) Clone() Message {
	return Message{b: append([]byte(nil), m.b...)}
}

// MessageType returns the value of option 53. ok is false when the cookie is
// wrong or the option is missing or malformed.
func (m Message) MessageType() (MessageType, bool) {
	opts, err := m.Options().Map()
	if err != nil {
		return 0, false
	}
	return LookupMessageType(opts)
}

func (m Message) String() string {
	h := m.Header()
	mt := "none"
	if t, ok := m.MessageType(); ok {
		mt = t.String()
	}
	return fmt.Sprintf("%s xid=0x%08x chaddr=%s ciaddr=%s yiaddr=%s giaddr=%s type=%s",
		h.OpCode(), h.XID(), h.ClientHWAddr(), h.CIAddr(), h.YIAddr(), h.GIAddr(), mt)
}
