// Package fingerprint guesses what kind of device sent a DHCP message from
// its vendor class (option 60), parameter request list (option 55) and host
// name (option 12). Nothing is stored; the result only decorates log lines.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/KOBA789/bhcq/pkg/dhcpv4"
)

// Fingerprint holds the client-supplied fields used for classification.
type Fingerprint struct {
	MAC         net.HardwareAddr
	VendorClass string
	ParamList   []dhcpv4.OptionCode
	Hostname    string
}

// FromOptions extracts a fingerprint from a message's options.
func FromOptions(mac net.HardwareAddr, opts dhcpv4.OptionMap) Fingerprint {
	fp := Fingerprint{MAC: mac}
	if vc, ok := dhcpv4.LookupBytes(opts, dhcpv4.OptionVendorClassID); ok {
		fp.VendorClass = string(vc)
	}
	fp.ParamList, _ = dhcpv4.LookupParameterRequestList(opts)
	fp.Hostname, _ = dhcpv4.LookupHostName(opts)
	return fp
}

// Hash returns a stable hash of the vendor class and parameter list. Clients
// running the same DHCP stack share it regardless of MAC or host name.
func (fp Fingerprint) Hash() string {
	h := sha256.New()
	h.Write([]byte(fp.VendorClass))
	h.Write([]byte{0})
	for _, c := range fp.ParamList {
		h.Write([]byte{byte(c)})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

// ParamListString returns the parameter request list as comma-separated codes.
func (fp Fingerprint) ParamListString() string {
	parts := make([]string, len(fp.ParamList))
	for i, c := range fp.ParamList {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, ",")
}

// OUI returns the first three octets of the MAC.
func (fp Fingerprint) OUI() string {
	if len(fp.MAC) < 3 {
		return ""
	}
	return fp.MAC[:3].String()
}

// Device is a best-effort classification. Confidence is 0..100.
type Device struct {
	Type       string
	OS         string
	Name       string
	Confidence int
}

// LogValue implements slog.LogValuer.
func (d Device) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("type", d.Type)}
	if d.OS != "" {
		attrs = append(attrs, slog.String("os", d.OS))
	}
	if d.Name != "" {
		attrs = append(attrs, slog.String("name", d.Name))
	}
	attrs = append(attrs, slog.Int("confidence", d.Confidence))
	return slog.GroupValue(attrs...)
}

type rule struct {
	match  func(s string) bool
	device Device
}

func prefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

func contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// Rules are tried in order; the first match wins.
var vendorClassRules = []rule{
	{prefix("msft "), Device{Type: "computer", OS: "Windows", Confidence: 80}},
	{prefix("android-dhcp"), Device{Type: "phone", OS: "Android", Confidence: 85}},
	{prefix("dhcpcd"), Device{Type: "computer", OS: "Linux", Confidence: 60}},
	{contains("udhcp"), Device{Type: "embedded", OS: "Linux (embedded)", Confidence: 50}},
	{contains("pxeclient"), Device{Type: "computer", Name: "PXE firmware", Confidence: 90}},
	{contains("cisco"), Device{Type: "network", Name: "Cisco", Confidence: 90}},
	{contains("aruba"), Device{Type: "network", Name: "Aruba", Confidence: 90}},
	{contains("meraki"), Device{Type: "network", Name: "Meraki", Confidence: 90}},
	{contains("ubnt", "ubiquiti"), Device{Type: "network", Name: "Ubiquiti", Confidence: 90}},
}

var hostnameRules = []rule{
	{contains("iphone", "ipad"), Device{Type: "phone", OS: "iOS/iPadOS", Confidence: 70}},
	{contains("macbook", "imac"), Device{Type: "computer", OS: "macOS", Confidence: 70}},
	{prefix("android-"), Device{Type: "phone", OS: "Android", Confidence: 60}},
	{contains("printer", "hp-", "epson"), Device{Type: "printer", Confidence: 60}},
	{contains("-ap-", "-sw-", "switch"), Device{Type: "network", Confidence: 50}},
}

var paramListRules = []rule{
	{prefix("1,15,3,6,44,46,47,31,33,121,249,43"), Device{Type: "computer", OS: "Windows", Confidence: 50}},
	{prefix("1,121,3,6,15,108,114,119,252"), Device{OS: "macOS/iOS", Confidence: 50}},
	{prefix("1,3,6,15,119,252"), Device{OS: "macOS/iOS", Confidence: 50}},
}

// Classify applies the vendor class rules, then host name, then parameter
// list. Fields filled by an earlier stage are kept.
func Classify(fp Fingerprint) Device {
	var d Device
	merge := func(rules []rule, s string) {
		if s == "" {
			return
		}
		for _, r := range rules {
			if !r.match(s) {
				continue
			}
			if d.Type == "" {
				d.Type = r.device.Type
			}
			if d.OS == "" {
				d.OS = r.device.OS
			}
			if d.Name == "" {
				d.Name = r.device.Name
			}
			if d.Confidence == 0 {
				d.Confidence = r.device.Confidence
			}
			return
		}
	}

	vc := strings.ToLower(fp.VendorClass)
	merge(vendorClassRules, vc)
	if strings.HasPrefix(vc, "msft ") {
		d.Name = windowsRelease(vc)
	}
	merge(hostnameRules, strings.ToLower(fp.Hostname))
	merge(paramListRules, fp.ParamListString())

	if d.Type == "" {
		d.Type = "unknown"
	}
	return d
}

func windowsRelease(vc string) string {
	switch {
	case strings.Contains(vc, "5.0"):
		return "Windows 2000/XP"
	case strings.Contains(vc, "6.0"):
		return "Windows Vista"
	case strings.Contains(vc, "6.1"):
		return "Windows 7"
	case strings.Contains(vc, "10.0"):
		return "Windows 10/11"
	}
	return ""
}
