package dhcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/KOBA789/bhcq/internal/metrics"
)

// Transport moves datagrams. Receive blocks for the next one; the returned
// payload may be reused by the following Receive.
type Transport interface {
	Receive(ctx context.Context) ([]byte, net.Addr, error)
	Send(ctx context.Context, payload []byte, dst net.Addr) error
}

// Server is the DHCPv4 receive/reply loop.
type Server struct {
	transport Transport
	handler   *Handler
	logger    *slog.Logger
}

// NewServer creates a new DHCP server.
func NewServer(transport Transport, handler *Handler, logger *slog.Logger) *Server {
	return &Server{
		transport: transport,
		handler:   handler,
		logger:    logger,
	}
}

// Serve handles datagrams one at a time until ctx is cancelled or the
// transport fails. Undecodable datagrams are logged and skipped; transport
// errors end the loop and are returned. Cancellation returns nil.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("DHCP server started")
	defer s.logger.Info("DHCP server stopped")

	for {
		if ctx.Err() != nil {
			return nil
		}

		data, src, err := s.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := s.processPacket(ctx, data, src); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// processPacket handles a single datagram. Only transport failures are
// returned.
func (s *Server) processPacket(ctx context.Context, data []byte, src net.Addr) error {
	reply, err := s.handler.Handle(data)
	if err != nil {
		if errors.Is(err, ErrDropped) {
			s.logger.Warn("dropping packet",
				"error", err,
				"src", addrString(src),
				"size", len(data))
			return nil
		}
		return err
	}
	if reply == nil {
		return nil // No response needed
	}

	if err := s.transport.Send(ctx, reply.Payload, reply.Dst); err != nil {
		return err
	}
	metrics.PacketsSent.WithLabelValues(reply.Type.String()).Inc()
	s.logger.Debug("sent reply",
		"msg_type", reply.Type.String(),
		"xid", fmt.Sprintf("%08x", reply.XID),
		"dst", reply.Dst.String(),
		"size", len(reply.Payload))
	return nil
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
