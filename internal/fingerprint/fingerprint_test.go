package fingerprint

import (
	"bytes"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/KOBA789/bhcq/pkg/dhcpv4"
)

func mustMAC(s string) net.HardwareAddr {
	m, err := net.ParseMAC(s)
	if err != nil {
		panic(err)
	}
	return m
}

func TestFromOptions(t *testing.T) {
	opts := dhcpv4.Map{
		dhcpv4.OptionVendorClassID:        []byte("android-dhcp-14"),
		dhcpv4.OptionParameterRequestList: {1, 3, 6, 15, 26, 28},
		dhcpv4.OptionHostname:             []byte("Pixel-8"),
	}
	fp := FromOptions(mustMAC("aa:bb:cc:00:11:22"), opts)

	if fp.VendorClass != "android-dhcp-14" {
		t.Errorf("VendorClass = %q", fp.VendorClass)
	}
	if fp.ParamListString() != "1,3,6,15,26,28" {
		t.Errorf("ParamListString() = %q", fp.ParamListString())
	}
	if fp.Hostname != "Pixel-8" {
		t.Errorf("Hostname = %q", fp.Hostname)
	}
	if fp.OUI() != "aa:bb:cc" {
		t.Errorf("OUI() = %q, want aa:bb:cc", fp.OUI())
	}

	empty := FromOptions(nil, dhcpv4.Map{})
	if empty.VendorClass != "" || empty.ParamList != nil || empty.Hostname != "" || empty.OUI() != "" {
		t.Errorf("FromOptions(empty) = %+v", empty)
	}
}

func TestFingerprintHash(t *testing.T) {
	fp1 := Fingerprint{VendorClass: "MSFT 5.0", ParamList: []dhcpv4.OptionCode{1, 3, 6, 15, 44, 46, 47}}
	fp2 := Fingerprint{VendorClass: "MSFT 5.0", ParamList: []dhcpv4.OptionCode{1, 3, 6, 15, 44, 46, 47}, Hostname: "other"}
	fp3 := Fingerprint{VendorClass: "android-dhcp-12", ParamList: []dhcpv4.OptionCode{1, 3, 6, 15, 26, 28}}

	if fp1.Hash() != fp2.Hash() {
		t.Error("identical fingerprints should have same hash")
	}
	if fp1.Hash() == fp3.Hash() {
		t.Error("different fingerprints should have different hashes")
	}
	if len(fp1.Hash()) != 16 {
		t.Errorf("Hash() length = %d, want 16", len(fp1.Hash()))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		fp   Fingerprint
		want Device
	}{
		{"windows", Fingerprint{VendorClass: "MSFT 5.0"},
			Device{Type: "computer", OS: "Windows", Name: "Windows 2000/XP", Confidence: 80}},
		{"android", Fingerprint{VendorClass: "android-dhcp-12"},
			Device{Type: "phone", OS: "Android", Confidence: 85}},
		{"cisco", Fingerprint{VendorClass: "Cisco AP c3700"},
			Device{Type: "network", Name: "Cisco", Confidence: 90}},
		{"ubiquiti", Fingerprint{VendorClass: "ubnt"},
			Device{Type: "network", Name: "Ubiquiti", Confidence: 90}},
		{"iphone by hostname", Fingerprint{Hostname: "Johns-iPhone"},
			Device{Type: "phone", OS: "iOS/iPadOS", Confidence: 70}},
		{"printer by hostname", Fingerprint{Hostname: "HP-LaserJet"},
			Device{Type: "printer", Confidence: 60}},
		{"apple by param list", Fingerprint{ParamList: []dhcpv4.OptionCode{1, 3, 6, 15, 119, 252}},
			Device{Type: "unknown", OS: "macOS/iOS", Confidence: 50}},
		{"dhcpcd keeps vendor confidence", Fingerprint{VendorClass: "dhcpcd-10.0.6:Linux", Hostname: "build-switch"},
			Device{Type: "computer", OS: "Linux", Confidence: 60}},
		{"nothing", Fingerprint{Hostname: "random-device"},
			Device{Type: "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.fp); got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDeviceLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("x", "device", Device{Type: "phone", OS: "Android", Confidence: 85})
	out := buf.String()
	for _, want := range []string{"device.type=phone", "device.os=Android", "device.confidence=85"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "device.name") {
		t.Errorf("log output %q has empty name", out)
	}
}
