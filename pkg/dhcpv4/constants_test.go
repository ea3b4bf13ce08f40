package dhcpv4

import "testing"

func TestMessageTypeString(t *testing.T) {
	tests := []struct {
		mt   MessageType
		want string
	}{
		{MessageTypeDiscover, "DHCPDISCOVER"},
		{MessageTypeOffer, "DHCPOFFER"},
		{MessageTypeRequest, "DHCPREQUEST"},
		{MessageTypeDecline, "DHCPDECLINE"},
		{MessageTypeAck, "DHCPACK"},
		{MessageTypeNak, "DHCPNAK"},
		{MessageTypeRelease, "DHCPRELEASE"},
		{MessageTypeInform, "DHCPINFORM"},
		{MessageType(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.mt.String(); got != tt.want {
			t.Errorf("MessageType(%d).String() = %q, want %q", tt.mt, got, tt.want)
		}
	}
}

func TestMessageTypeKnown(t *testing.T) {
	for v := 0; v < 256; v++ {
		want := v >= 1 && v <= 8
		if got := MessageType(v).Known(); got != want {
			t.Errorf("MessageType(%d).Known() = %v, want %v", v, got, want)
		}
	}
}

func TestOpCodeString(t *testing.T) {
	tests := []struct {
		op   OpCode
		want string
	}{
		{OpCodeBootRequest, "BOOTREQUEST"},
		{OpCodeBootReply, "BOOTREPLY"},
		{OpCode(7), "OpCode(7)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("OpCode(%d).String() = %q, want %q", byte(tt.op), got, tt.want)
		}
	}
}

func TestOptionCodeValues(t *testing.T) {
	// Verify key option codes match RFC 2132 values
	tests := []struct {
		code OptionCode
		want byte
	}{
		{OptionPad, 0},
		{OptionSubnetMask, 1},
		{OptionRouter, 3},
		{OptionDomainNameServer, 6},
		{OptionHostname, 12},
		{OptionDomainName, 15},
		{OptionRequestedIP, 50},
		{OptionIPLeaseTime, 51},
		{OptionDHCPMessageType, 53},
		{OptionServerIdentifier, 54},
		{OptionParameterRequestList, 55},
		{OptionRenewalTime, 58},
		{OptionRebindingTime, 59},
		{OptionClientIdentifier, 61},
		{OptionRelayAgentInfo, 82},
		{OptionClasslessStaticRoute, 121},
		{OptionEnd, 255},
	}
	for _, tt := range tests {
		if byte(tt.code) != tt.want {
			t.Errorf("OptionCode %d: got %d, want %d", tt.code, byte(tt.code), tt.want)
		}
	}
}

func TestOptionCodeString(t *testing.T) {
	tests := []struct {
		code OptionCode
		want string
	}{
		{OptionSubnetMask, "SubnetMask"},
		{OptionDHCPMessageType, "DHCPMessageType"},
		{OptionEnd, "End"},
		{OptionCode(200), "Option(200)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("OptionCode(%d).String() = %q, want %q", byte(tt.code), got, tt.want)
		}
	}
}

func TestOptionNamesUnique(t *testing.T) {
	seen := make(map[string]OptionCode, len(optionNames))
	for code, name := range optionNames {
		if prev, ok := seen[name]; ok {
			t.Errorf("name %q used by both %d and %d", name, byte(prev), byte(code))
		}
		seen[name] = code
	}
}

func TestPacketSizeConstants(t *testing.T) {
	if HeaderSize != 236 {
		t.Errorf("HeaderSize = %d, want 236", HeaderSize)
	}
	if MinPacketSize != 300 {
		t.Errorf("MinPacketSize = %d, want 300", MinPacketSize)
	}
	if MinOptionsSize != 64 {
		t.Errorf("MinOptionsSize = %d, want 64", MinOptionsSize)
	}
	if MaxPacketSize != 1500 {
		t.Errorf("MaxPacketSize = %d, want 1500", MaxPacketSize)
	}
	if ServerPort != 67 {
		t.Errorf("ServerPort = %d, want 67", ServerPort)
	}
	if ClientPort != 68 {
		t.Errorf("ClientPort = %d, want 68", ClientPort)
	}
}

func TestMagicCookie(t *testing.T) {
	expected := []byte{99, 130, 83, 99}
	if len(MagicCookie) != 4 {
		t.Fatalf("MagicCookie length = %d, want 4", len(MagicCookie))
	}
	for i, b := range MagicCookie {
		if b != expected[i] {
			t.Errorf("MagicCookie[%d] = %d, want %d", i, b, expected[i])
		}
	}
}
