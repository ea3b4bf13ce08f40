// Package dhcpv4 implements a zero-copy codec for DHCPv4 messages: read views
// over received datagrams and an append-only builder for replies.
package dhcpv4

import (
	"fmt"
	"net"
)

// DHCP Message Types (RFC 2131 §9.6)
type MessageType byte

const (
	MessageTypeDiscover MessageType = 1 // DHCPDISCOVER
	MessageTypeOffer    MessageType = 2 // DHCPOFFER
	MessageTypeRequest  MessageType = 3 // DHCPREQUEST
	MessageTypeDecline  MessageType = 4 // DHCPDECLINE
	MessageTypeAck      MessageType = 5 // DHCPACK
	MessageTypeNak      MessageType = 6 // DHCPNAK
	MessageTypeRelease  MessageType = 7 // DHCPRELEASE
	MessageTypeInform   MessageType = 8 // DHCPINFORM
)

func (m MessageType) String() string {
	switch m {
	case MessageTypeDiscover:
		return "DHCPDISCOVER"
	case MessageTypeOffer:
		return "DHCPOFFER"
	case MessageTypeRequest:
		return "DHCPREQUEST"
	case MessageTypeDecline:
		return "DHCPDECLINE"
	case MessageTypeAck:
		return "DHCPACK"
	case MessageTypeNak:
		return "DHCPNAK"
	case MessageTypeRelease:
		return "DHCPRELEASE"
	case MessageTypeInform:
		return "DHCPINFORM"
	default:
		return "UNKNOWN"
	}
}

// Known reports whether m is one of the eight RFC 2131 message types.
// Other values are carried through untouched but never dispatched.
func (m MessageType) Known() bool {
	return m >= MessageTypeDiscover && m <= MessageTypeInform
}

// DHCP Op Codes (RFC 2131 §2)
type OpCode byte

const (
	OpCodeBootRequest OpCode = 1 // BOOTREQUEST
	OpCodeBootReply   OpCode = 2 // BOOTREPLY
)

func (o OpCode) String() string {
	switch o {
	case OpCodeBootRequest:
		return "BOOTREQUEST"
	case OpCodeBootReply:
		return "BOOTREPLY"
	default:
		return fmt.Sprintf("OpCode(%d)", byte(o))
	}
}

// Hardware Types (RFC 1700)
type HardwareType byte

const (
	HardwareTypeEthernet HardwareType = 1
)

// EthernetAddrLen is the hardware address length written by ResetToDefault.
const EthernetAddrLen = 6

// FlagBroadcast is the BROADCAST bit of the flags field (RFC 2131 §2).
const FlagBroadcast uint16 = 0x8000

// DHCP Option Codes (RFC 2132 and extensions)
type OptionCode byte

const (
	OptionPad                    OptionCode = 0
	OptionSubnetMask             OptionCode = 1
	OptionTimeOffset             OptionCode = 2
	OptionRouter                 OptionCode = 3
	OptionTimeServer             OptionCode = 4
	OptionNameServer             OptionCode = 5
	OptionDomainNameServer       OptionCode = 6
	OptionLogServer              OptionCode = 7
	OptionCookieServer           OptionCode = 8
	OptionLPRServer              OptionCode = 9
	OptionImpressServer          OptionCode = 10
	OptionResourceLocationServer OptionCode = 11
	OptionHostname               OptionCode = 12
	OptionBootFileSize           OptionCode = 13
	OptionMeritDumpFile          OptionCode = 14
	OptionDomainName             OptionCode = 15
	OptionSwapServer             OptionCode = 16
	OptionRootPath               OptionCode = 17
	OptionExtensionsPath         OptionCode = 18
	OptionIPForwarding           OptionCode = 19
	OptionNonLocalSourceRouting  OptionCode = 20
	OptionPolicyFilter           OptionCode = 21
	OptionMaxDatagramReassembly  OptionCode = 22
	OptionDefaultIPTTL           OptionCode = 23
	OptionPathMTUAgingTimeout    OptionCode = 24
	OptionPathMTUPlateauTable    OptionCode = 25
	OptionInterfaceMTU           OptionCode = 26
	OptionAllSubnetsLocal        OptionCode = 27
	OptionBroadcastAddress       OptionCode = 28
	OptionPerformMaskDiscovery   OptionCode = 29
	OptionMaskSupplier           OptionCode = 30
	OptionPerformRouterDiscovery OptionCode = 31
	OptionRouterSolicitAddr      OptionCode = 32
	OptionStaticRoute            OptionCode = 33
	OptionTrailerEncapsulation   OptionCode = 34
	OptionARPCacheTimeout        OptionCode = 35
	OptionEthernetEncapsulation  OptionCode = 36
	OptionTCPDefaultTTL          OptionCode = 37
	OptionTCPKeepaliveInterval   OptionCode = 38
	OptionTCPKeepaliveGarbage    OptionCode = 39
	OptionNISDomain              OptionCode = 40
	OptionNISServers             OptionCode = 41
	OptionNTPServers             OptionCode = 42
	OptionVendorSpecific         OptionCode = 43
	OptionNetBIOSNameServer      OptionCode = 44
	OptionNetBIOSDatagramDist    OptionCode = 45
	OptionNetBIOSNodeType        OptionCode = 46
	OptionNetBIOSScope           OptionCode = 47
	OptionXWindowFontServer      OptionCode = 48
	OptionXWindowDisplayManager  OptionCode = 49
	OptionRequestedIP            OptionCode = 50
	OptionIPLeaseTime            OptionCode = 51
	OptionOverload               OptionCode = 52
	OptionDHCPMessageType        OptionCode = 53
	OptionServerIdentifier       OptionCode = 54
	OptionParameterRequestList   OptionCode = 55
	OptionMessage                OptionCode = 56
	OptionMaxDHCPMessageSize     OptionCode = 57
	OptionRenewalTime            OptionCode = 58
	OptionRebindingTime          OptionCode = 59
	OptionVendorClassID          OptionCode = 60
	OptionClientIdentifier       OptionCode = 61
	OptionNetWareIPDomain        OptionCode = 62
	OptionNetWareIPOption        OptionCode = 63
	OptionNISPlusDomain          OptionCode = 64
	OptionNISPlusServers         OptionCode = 65
	OptionTFTPServerName         OptionCode = 66
	OptionBootfileName           OptionCode = 67
	OptionMobileIPHomeAgent      OptionCode = 68
	OptionSMTPServer             OptionCode = 69
	OptionPOP3Server             OptionCode = 70
	OptionNNTPServer             OptionCode = 71
	OptionWWWServer              OptionCode = 72
	OptionFingerServer           OptionCode = 73
	OptionIRCServer              OptionCode = 74
	OptionStreetTalkServer       OptionCode = 75
	OptionStreetTalkDAServer     OptionCode = 76
	OptionUserClass              OptionCode = 77
	OptionClientFQDN             OptionCode = 81
	OptionRelayAgentInfo         OptionCode = 82
	OptionSubnetSelection        OptionCode = 118
	OptionClasslessStaticRoute   OptionCode = 121
	OptionVIVendorClass          OptionCode = 124
	OptionVIVendorSpecific       OptionCode = 125
	OptionTFTPServerAddress      OptionCode = 150
	OptionEnd                    OptionCode = 255
)

var optionNames = map[OptionCode]string{
	OptionPad:                    "Pad",
	OptionSubnetMask:             "SubnetMask",
	OptionTimeOffset:             "TimeOffset",
	OptionRouter:                 "Router",
	OptionTimeServer:             "TimeServer",
	OptionNameServer:             "NameServer",
	OptionDomainNameServer:       "DomainNameServer",
	OptionLogServer:              "LogServer",
	OptionCookieServer:           "CookieServer",
	OptionLPRServer:              "LPRServer",
	OptionImpressServer:          "ImpressServer",
	OptionResourceLocationServer: "ResourceLocationServer",
	OptionHostname:               "Hostname",
	OptionBootFileSize:           "BootFileSize",
	OptionMeritDumpFile:          "MeritDumpFile",
	OptionDomainName:             "DomainName",
	OptionSwapServer:             "SwapServer",
	OptionRootPath:               "RootPath",
	OptionExtensionsPath:         "ExtensionsPath",
	OptionIPForwarding:           "IPForwarding",
	OptionNonLocalSourceRouting:  "NonLocalSourceRouting",
	OptionPolicyFilter:           "PolicyFilter",
	OptionMaxDatagramReassembly:  "MaxDatagramReassembly",
	OptionDefaultIPTTL:           "DefaultIPTTL",
	OptionPathMTUAgingTimeout:    "PathMTUAgingTimeout",
	OptionPathMTUPlateauTable:    "PathMTUPlateauTable",
	OptionInterfaceMTU:           "InterfaceMTU",
	OptionAllSubnetsLocal:        "AllSubnetsLocal",
	OptionBroadcastAddress:       "BroadcastAddress",
	OptionPerformMaskDiscovery:   "PerformMaskDiscovery",
	OptionMaskSupplier:           "MaskSupplier",
	OptionPerformRouterDiscovery: "PerformRouterDiscovery",
	OptionRouterSolicitAddr:      "RouterSolicitAddr",
	OptionStaticRoute:            "StaticRoute",
	OptionTrailerEncapsulation:   "TrailerEncapsulation",
	OptionARPCacheTimeout:        "ARPCacheTimeout",
	OptionEthernetEncapsulation:  "EthernetEncapsulation",
	OptionTCPDefaultTTL:          "TCPDefaultTTL",
	OptionTCPKeepaliveInterval:   "TCPKeepaliveInterval",
	OptionTCPKeepaliveGarbage:    "TCPKeepaliveGarbage",
	OptionNISDomain:              "NISDomain",
	OptionNISServers:             "NISServers",
	OptionNTPServers:             "NTPServers",
	OptionVendorSpecific:         "VendorSpecific",
	OptionNetBIOSNameServer:      "NetBIOSNameServer",
	OptionNetBIOSDatagramDist:    "NetBIOSDatagramDist",
	OptionNetBIOSNodeType:        "NetBIOSNodeType",
	OptionNetBIOSScope:           "NetBIOSScope",
	OptionXWindowFontServer:      "XWindowFontServer",
	OptionXWindowDisplayManager:  "XWindowDisplayManager",
	OptionRequestedIP:            "RequestedIP",
	OptionIPLeaseTime:            "IPLeaseTime",
	OptionOverload:               "Overload",
	OptionDHCPMessageType:        "DHCPMessageType",
	OptionServerIdentifier:       "ServerIdentifier",
	OptionParameterRequestList:   "ParameterRequestList",
	OptionMessage:                "Message",
	OptionMaxDHCPMessageSize:     "MaxDHCPMessageSize",
	OptionRenewalTime:            "RenewalTime",
	OptionRebindingTime:          "RebindingTime",
	OptionVendorClassID:          "VendorClassID",
	OptionClientIdentifier:       "ClientIdentifier",
	OptionNetWareIPDomain:        "NetWareIPDomain",
	OptionNetWareIPOption:        "NetWareIPOption",
	OptionNISPlusDomain:          "NISPlusDomain",
	OptionNISPlusServers:         "NISPlusServers",
	OptionTFTPServerName:         "TFTPServerName",
	OptionBootfileName:           "BootfileName",
	OptionMobileIPHomeAgent:      "MobileIPHomeAgent",
	OptionSMTPServer:             "SMTPServer",
	OptionPOP3Server:             "POP3Server",
	OptionNNTPServer:             "NNTPServer",
	OptionWWWServer:              "WWWServer",
	OptionFingerServer:           "FingerServer",
	OptionIRCServer:              "IRCServer",
	OptionStreetTalkServer:       "StreetTalkServer",
	OptionStreetTalkDAServer:     "StreetTalkDAServer",
	OptionUserClass:              "UserClass",
	OptionClientFQDN:             "ClientFQDN",
	OptionRelayAgentInfo:         "RelayAgentInfo",
	OptionSubnetSelection:        "SubnetSelection",
	OptionClasslessStaticRoute:   "ClasslessStaticRoute",
	OptionVIVendorClass:          "VIVendorClass",
	OptionVIVendorSpecific:       "VIVendorSpecific",
	OptionTFTPServerAddress:      "TFTPServerAddress",
	OptionEnd:                    "End",
}

func (c OptionCode) String() string {
	if name, ok := optionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Option(%d)", byte(c))
}

// DHCP Packet Size Limits
const (
	HeaderSize        = 236  // Fixed BOOTP header (RFC 2131 §2)
	MagicCookieSize   = 4    // Options cookie (RFC 2131 §3)
	MinPacketSize     = 300  // Minimum DHCP packet size (RFC 951)
	MaxPacketSize     = 1500 // Maximum DHCP packet size (Ethernet MTU)
	DefaultPacketSize = 576  // Default max packet size (RFC 2131 §2)
	MaxOptionLen      = 255  // One length byte

	// Options region of a minimum-size packet, cookie included.
	MinOptionsSize = MinPacketSize - HeaderSize
)

// DHCP Ports
const (
	ServerPort = 67
	ClientPort = 68
)

// DHCP Magic Cookie (RFC 2131 §3)
var MagicCookie = [MagicCookieSize]byte{99, 130, 83, 99}

// Broadcast MAC and IP
var (
	BroadcastMAC = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	BroadcastIP  = net.IPv4(255, 255, 255, 255)
	ZeroIP       = net.IPv4(0, 0, 0, 0)
)
