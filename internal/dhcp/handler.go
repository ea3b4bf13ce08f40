package dhcp

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/KOBA789/bhcq/internal/config"
	"github.com/KOBA789/bhcq/internal/fingerprint"
	"github.com/KOBA789/bhcq/internal/metrics"
	"github.com/KOBA789/bhcq/pkg/dhcpv4"
)

// ErrDropped wraps every reason a datagram gets no reply because of what it
// contains. Callers log it and keep serving.
var ErrDropped = errors.New("datagram dropped")

var (
	ErrNoMessageType  = errors.New("missing or malformed message type option")
	ErrNotBootRequest = errors.New("not a BOOTREQUEST")
)

// Reply is an encoded response and where to send it.
type Reply struct {
	Type    dhcpv4.MessageType
	XID     uint32
	Payload []byte
	Dst     *net.UDPAddr
}

// Handler answers DISCOVER with OFFER and REQUEST with ACK, always for the
// same configured lease. It keeps no state between datagrams.
//
// A Handler reuses one Builder, so Reply.Payload is only valid until the
// next call to Handle and a Handler must not be shared between goroutines.
type Handler struct {
	params  config.LeaseParams
	logger  *slog.Logger
	builder *dhcpv4.Builder
}

// NewHandler creates a new DHCP message handler.
func NewHandler(params config.LeaseParams, logger *slog.Logger) *Handler {
	return &Handler{
		params:  params,
		logger:  logger,
		builder: dhcpv4.NewBuilder(),
	}
}

// Handle classifies one datagram. It returns a reply for DISCOVER and
// REQUEST, nil for any other message type, and an error wrapping ErrDropped
// when the datagram cannot be used.
func (h *Handler) Handle(data []byte) (*Reply, error) {
	start := time.Now()

	msg, err := dhcpv4.NewMessage(data)
	if err != nil {
		return nil, h.drop(metrics.ReasonShort, err)
	}
	req := msg.Header()
	if req.OpCode() != dhcpv4.OpCodeBootRequest {
		return nil, h.drop(metrics.ReasonOpCode, fmt.Errorf("%w: op %s", ErrNotBootRequest, req.OpCode()))
	}
	opts, err := msg.Options().Map()
	if err != nil {
		return nil, h.drop(metrics.ReasonCookie, err)
	}
	msgType, ok := dhcpv4.LookupMessageType(opts)
	if !ok {
		return nil, h.drop(metrics.ReasonMessageType, ErrNoMessageType)
	}

	label := msgType.String()
	metrics.PacketsReceived.WithLabelValues(label).Inc()
	defer func() {
		metrics.PacketProcessingDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	h.logger.Debug("received DHCP packet",
		"msg_type", label,
		"mac", req.ClientHWAddr().String(),
		"xid", fmt.Sprintf("%08x", req.XID()),
		"ciaddr", req.CIAddr().String(),
		"giaddr", req.GIAddr().String())

	switch msgType {
	case dhcpv4.MessageTypeDiscover:
		fp := fingerprint.FromOptions(req.ClientHWAddr(), opts)
		h.logger.Info("DHCPDISCOVER",
			"mac", req.ClientHWAddr().String(),
			"hostname", fp.Hostname,
			"oui", fp.OUI(),
			"fingerprint", fp.Hash(),
			"device", fingerprint.Classify(fp),
			"offer", h.params.Address.String())
		return h.reply(req, dhcpv4.MessageTypeOffer)
	case dhcpv4.MessageTypeRequest:
		requested, _ := dhcpv4.LookupRequestedIP(opts)
		h.logger.Info("DHCPREQUEST",
			"mac", req.ClientHWAddr().String(),
			"ciaddr", req.CIAddr().String(),
			"requested_ip", requested.String())
		return h.reply(req, dhcpv4.MessageTypeAck)
	default:
		h.logger.Info("ignoring DHCP message",
			"msg_type", label,
			"mac", req.ClientHWAddr().String(),
			"xid", fmt.Sprintf("%08x", req.XID()))
		return nil, nil
	}
}

// reply builds an OFFER or ACK for req. Both carry the same lease; ACK also
// echoes ciaddr.
// RFC 2131 §4.3.1, §4.3.2.
func (h *Handler) reply(req dhcpv4.Header, msgType dhcpv4.MessageType) (*Reply, error) {
	b := h.builder
	b.Reset()

	rh := b.Header()
	rh.SetOpCode(dhcpv4.OpCodeBootReply)
	rh.SetHardwareType(req.HardwareType())
	rh.SetHardwareLen(req.HardwareLen())
	rh.SetXID(req.XID())
	rh.SetFlags(req.Flags())
	rh.SetYIAddr(h.params.Address)
	rh.SetGIAddr(req.GIAddr())
	rh.SetCHAddr(req.CHAddr())
	if msgType == dhcpv4.MessageTypeAck {
		rh.SetCIAddr(req.CIAddr())
	}

	o := b.Options().AddMagicCookie().AddMessageType(msgType)
	if h.params.ServerID != nil {
		o.AddServerIdentifier(h.params.ServerID)
	}
	o.AddSubnetMask(h.params.SubnetMask)
	if len(h.params.Routers) > 0 {
		o.AddRouters(h.params.Routers...)
	}
	o.AddLeaseTime(h.params.LeaseTime)
	if len(h.params.DNSServers) > 0 {
		o.AddDomainNameServers(h.params.DNSServers...)
	}
	if h.params.DomainName != "" {
		o.AddDomainName(h.params.DomainName)
	}
	o.AddEnd()

	payload, err := b.Finish()
	if err != nil {
		return nil, h.drop(metrics.ReasonBuild, fmt.Errorf("building %s: %w", msgType, err))
	}

	return &Reply{
		Type:    msgType,
		XID:     req.XID(),
		Payload: payload,
		Dst:     &net.UDPAddr{IP: net.IPv4bcast, Port: dhcpv4.ClientPort},
	}, nil
}

func (h *Handler) drop(reason string, err error) error {
	metrics.PacketsDropped.WithLabelValues(reason).Inc()
	return fmt.Errorf("%w: %w", ErrDropped, err)
}
