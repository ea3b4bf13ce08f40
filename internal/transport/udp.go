// Package transport carries DHCP datagrams over a UDP socket bound to one
// interface.
package transport

import (
	"context"
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/KOBA789/bhcq/pkg/dhcpv4"
)

// Config selects the socket to listen on. An empty Interface accepts
// datagrams from every interface.
type Config struct {
	Interface   string
	BindAddress string
}

// UDP is a broadcast-capable udp4 socket. It satisfies dhcp.Transport.
type UDP struct {
	conn    net.PacketConn
	pc      *ipv4.PacketConn
	ifindex int
	buf     []byte
}

// maxDatagramSize is the largest UDP payload over IPv4. Receive never
// truncates a datagram.
const maxDatagramSize = 65535

// Listen opens the socket described by cfg.
func Listen(ctx context.Context, cfg Config) (*UDP, error) {
	if cfg.BindAddress == "" {
		cfg.BindAddress = fmt.Sprintf("0.0.0.0:%d", dhcpv4.ServerPort)
	}

	ifindex := 0
	if cfg.Interface != "" {
		iface, err := net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, fmt.Errorf("looking up interface %s: %w", cfg.Interface, err)
		}
		ifindex = iface.Index
	}

	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var serr error
			if err := c.Control(func(fd uintptr) {
				serr = setSockopts(fd, cfg.Interface)
			}); err != nil {
				return err
			}
			return serr
		},
	}
	conn, err := lc.ListenPacket(ctx, "udp4", cfg.BindAddress)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", cfg.BindAddress, err)
	}

	pc := ipv4.NewPacketConn(conn)
	if err := pc.SetControlMessage(ipv4.FlagInterface, true); err != nil && ifindex != 0 {
		conn.Close()
		return nil, fmt.Errorf("enabling interface control messages: %w", err)
	}

	return &UDP{
		conn:    conn,
		pc:      pc,
		ifindex: ifindex,
		buf:     make([]byte, maxDatagramSize),
	}, nil
}

// Receive blocks for the next datagram that arrived on the bound interface.
// The payload is only valid until the next call.
func (u *UDP) Receive(ctx context.Context) ([]byte, net.Addr, error) {
	if err := u.conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, nil, err
	}
	stop := context.AfterFunc(ctx, func() {
		u.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		n, cm, src, err := u.pc.ReadFrom(u.buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			return nil, nil, err
		}
		if u.ifindex != 0 && cm != nil && cm.IfIndex != u.ifindex {
			continue
		}
		return u.buf[:n], src, nil
	}
}

// Send writes payload to dst out of the bound interface.
func (u *UDP) Send(_ context.Context, payload []byte, dst net.Addr) error {
	var cm *ipv4.ControlMessage
	if u.ifindex != 0 {
		cm = &ipv4.ControlMessage{IfIndex: u.ifindex}
	}
	if _, err := u.pc.WriteTo(payload, cm, dst); err != nil {
		return err
	}
	return nil
}

// LocalAddr returns the bound address.
func (u *UDP) LocalAddr() net.Addr { return u.conn.LocalAddr() }

// Close closes the socket. Blocked Receive calls return an error.
func (u *UDP) Close() error { return u.conn.Close() }
