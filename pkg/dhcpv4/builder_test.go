package dhcpv4

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"
)

func TestBuilderEmptyFinish(t *testing.T) {
	b := NewBuilder()
	out, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if len(out) != MinPacketSize {
		t.Fatalf("Finish() length = %d, want %d", len(out), MinPacketSize)
	}
	if out[0] != 1 || out[1] != 1 || out[2] != 6 {
		t.Errorf("op/htype/hlen = %d/%d/%d, want 1/1/6", out[0], out[1], out[2])
	}
	if !bytes.Equal(out[HeaderSize:], make([]byte, MinPacketSize-HeaderSize)) {
		t.Error("padding after header is not zero")
	}
}

func TestBuilderOptionsLayout(t *testing.T) {
	b := NewBuilder()
	b.Options().
		AddMagicCookie().
		AddMessageType(MessageTypeOffer).
		AddSubnetMask(net.CIDRMask(24, 32)).
		AddRouters(net.IPv4(192, 168, 44, 1)).
		AddLeaseTime(30*time.Second).
		AddDomainNameServers(net.IPv4(8, 8, 8, 8), net.IPv4(8, 8, 4, 4)).
		AddEnd()
	out, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	want := []byte{
		99, 130, 83, 99,
		53, 1, 2,
		1, 4, 255, 255, 255, 0,
		3, 4, 192, 168, 44, 1,
		51, 4, 0, 0, 0, 30,
		6, 8, 8, 8, 8, 8, 8, 8, 4, 4,
		255,
	}
	if got := out[HeaderSize : HeaderSize+len(want)]; !bytes.Equal(got, want) {
		t.Errorf("options = %v\nwant      %v", got, want)
	}
	if len(out) != MinPacketSize {
		t.Errorf("length = %d, want %d", len(out), MinPacketSize)
	}
}

func TestBuilderReadBack(t *testing.T) {
	b := NewBuilder()
	h := b.Header()
	h.SetOpCode(OpCodeBootReply)
	h.SetXID(0x01020304)
	h.SetYIAddr(net.IPv4(192, 168, 44, 2))
	b.Options().
		AddMagicCookie().
		AddMessageType(MessageTypeAck).
		AddServerIdentifier(net.IPv4(192, 168, 44, 1)).
		AddRequestedIP(net.IPv4(192, 168, 44, 2)).
		AddHostName("client").
		AddDomainName("lan").
		AddEnd()
	out, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}

	msg, err := NewMessage(out)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Header().XID() != 0x01020304 {
		t.Errorf("XID = 0x%08X, want 0x01020304", msg.Header().XID())
	}
	m, err := msg.Options().Map()
	if err != nil {
		t.Fatal(err)
	}
	if mt, _ := LookupMessageType(m); mt != MessageTypeAck {
		t.Errorf("message type = %s, want DHCPACK", mt)
	}
	if sid, _ := LookupServerIdentifier(m); !sid.Equal(net.IPv4(192, 168, 44, 1)) {
		t.Errorf("server id = %s", sid)
	}
	if ip, _ := LookupRequestedIP(m); !ip.Equal(net.IPv4(192, 168, 44, 2)) {
		t.Errorf("requested ip = %s", ip)
	}
	if name, _ := LookupHostName(m); name != "client" {
		t.Errorf("host name = %q", name)
	}
	if name, _ := LookupDomainName(m); name != "lan" {
		t.Errorf("domain name = %q", name)
	}
}

func TestBuilderHeaderViewSurvivesAppends(t *testing.T) {
	b := NewBuilder()
	h := b.Header()
	opts := b.Options().AddMagicCookie()
	for i := 0; i < 20; i++ {
		opts.AddBytes(OptionVendorSpecific, make([]byte, 50))
	}
	if err := b.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	h.SetXID(0xCAFEBABE)
	out, _ := b.Finish()
	msg, _ := NewMessage(out)
	if msg.Header().XID() != 0xCAFEBABE {
		t.Errorf("XID = 0x%08X, want 0xCAFEBABE", msg.Header().XID())
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Builder)
		want  error
	}{
		{"option before cookie", func(b *Builder) {
			b.Options().AddMessageType(MessageTypeOffer)
		}, ErrCookieOrder},
		{"end before cookie", func(b *Builder) {
			b.Options().AddEnd()
		}, ErrCookieOrder},
		{"second cookie", func(b *Builder) {
			b.Options().AddMagicCookie().AddMagicCookie()
		}, ErrCookieOrder},
		{"value too long", func(b *Builder) {
			b.Options().AddMagicCookie().AddBytes(OptionVendorSpecific, make([]byte, 256))
		}, ErrOptionTooLong},
		{"capacity", func(b *Builder) {
			o := b.Options().AddMagicCookie()
			for i := 0; i < 10; i++ {
				o.AddBytes(OptionVendorSpecific, make([]byte, 200))
			}
		}, ErrBufferFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			if !errors.Is(b.Err(), tt.want) {
				t.Errorf("Err() = %v, want %v", b.Err(), tt.want)
			}
			if out, err := b.Finish(); !errors.Is(err, tt.want) || out != nil {
				t.Errorf("Finish() = %d bytes, %v, want nil, %v", len(out), err, tt.want)
			}
			if b.Len() > b.Cap() {
				t.Errorf("Len() = %d exceeds Cap() = %d", b.Len(), b.Cap())
			}
		})
	}
}

func TestBuilderStickyError(t *testing.T) {
	b := NewBuilder()
	b.Options().AddMessageType(MessageTypeOffer).AddMagicCookie().AddEnd()
	if !errors.Is(b.Err(), ErrCookieOrder) {
		t.Fatalf("Err() = %v, want ErrCookieOrder", b.Err())
	}
	if b.Len() != HeaderSize {
		t.Errorf("Len() = %d, want %d; appends after the error must be no-ops", b.Len(), HeaderSize)
	}
}

func TestNewBuilderSizeClamped(t *testing.T) {
	b := NewBuilderSize(10)
	if b.Cap() != MinPacketSize {
		t.Errorf("Cap() = %d, want %d", b.Cap(), MinPacketSize)
	}
	out, err := b.Finish()
	if err != nil || len(out) != MinPacketSize {
		t.Errorf("Finish() = %d bytes, %v", len(out), err)
	}
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder()
	b.Header().SetXID(99)
	b.Options().AddMagicCookie().AddMessageType(MessageTypeOffer).AddEnd()
	if _, err := b.Finish(); err != nil {
		t.Fatal(err)
	}

	b.Reset()
	if b.Len() != HeaderSize {
		t.Errorf("Len() after Reset = %d, want %d", b.Len(), HeaderSize)
	}
	if b.Header().XID() != 0 {
		t.Errorf("XID after Reset = %d, want 0", b.Header().XID())
	}
	// The previous options must not leak into the padding.
	out, _ := b.Finish()
	if !bytes.Equal(out[HeaderSize:], make([]byte, MinPacketSize-HeaderSize)) {
		t.Error("stale option bytes after Reset")
	}

	b.Options().AddMessageType(MessageTypeAck)
	if !errors.Is(b.Err(), ErrCookieOrder) {
		t.Error("Reset did not require a new cookie")
	}
	b.Reset()
	if b.Err() != nil {
		t.Errorf("Err() after Reset = %v, want nil", b.Err())
	}
}

func TestBuilderFinishOwned(t *testing.T) {
	b := NewBuilder()
	b.Header().SetXID(7)
	b.Options().AddMagicCookie().AddEnd()
	owned, err := b.FinishOwned()
	if err != nil {
		t.Fatal(err)
	}

	b.Header().SetXID(8)
	b.Options().AddMagicCookie().AddMessageType(MessageTypeNak).AddEnd()
	if _, err := b.Finish(); err != nil {
		t.Fatal(err)
	}

	msg, _ := NewMessage(owned)
	if msg.Header().XID() != 7 {
		t.Errorf("owned XID = %d, want 7", msg.Header().XID())
	}
	if owned[HeaderSize+4] != 255 {
		t.Errorf("owned options overwritten: %v", owned[HeaderSize:HeaderSize+8])
	}
}

func TestAddLeaseTimeRange(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want []byte
	}{
		{-time.Second, []byte{0, 0, 0, 0}},
		{90 * time.Second, []byte{0, 0, 0, 90}},
		{1500 * time.Millisecond, []byte{0, 0, 0, 1}},
		{200 * 365 * 24 * time.Hour, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, tt := range tests {
		b := NewBuilder()
		b.Options().AddMagicCookie().AddLeaseTime(tt.d)
		out, _ := b.Finish()
		got := out[HeaderSize+6 : HeaderSize+10]
		if !bytes.Equal(got, tt.want) {
			t.Errorf("AddLeaseTime(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}
