package dhcpv4

import (
	"encoding/binary"
	"net"
	"time"
)

// OptionMap is anything that can look up a raw option value by code.
type OptionMap interface {
	Lookup(code OptionCode) ([]byte, bool)
}

// Map is an OptionMap keyed by code. Values borrow from the message they
// were collected from.
type Map map[OptionCode][]byte

// Lookup implements OptionMap.
func (m Map) Lookup(code OptionCode) ([]byte, bool) {
	v, ok := m[code]
	return v, ok
}

// CollectMap drains it into a Map. When a code repeats, the first occurrence
// wins.
func CollectMap(it *Iterator) Map {
	m := make(Map)
	for {
		opt, ok := it.Next()
		if !ok {
			return m
		}
		if _, dup := m[opt.Code]; !dup {
			m[opt.Code] = opt.Value
		}
	}
}

// LookupBytes returns the raw value of code.
func LookupBytes(m OptionMap, code OptionCode) ([]byte, bool) {
	return m.Lookup(code)
}

// LookupIP returns code as a single IPv4 address. The value must be exactly
// four bytes.
func LookupIP(m OptionMap, code OptionCode) (net.IP, bool) {
	v, ok := m.Lookup(code)
	if !ok || len(v) != net.IPv4len {
		return nil, false
	}
	return BytesToIP(v), true
}

// LookupIPs returns code as a list of IPv4 addresses. The value length must be
// a multiple of four; an empty list is valid.
func LookupIPs(m OptionMap, code OptionCode) (*IPIterator, bool) {
	v, ok := m.Lookup(code)
	if !ok || len(v)%net.IPv4len != 0 {
		return nil, false
	}
	return &IPIterator{b: v}, true
}

// LookupMessageType returns option 53. The value must be exactly one byte.
func LookupMessageType(m OptionMap) (MessageType, bool) {
	v, ok := m.Lookup(OptionDHCPMessageType)
	if !ok || len(v) != 1 {
		return 0, false
	}
	return MessageType(v[0]), true
}

// LookupLeaseTime returns option 51 as a duration.
func LookupLeaseTime(m OptionMap) (time.Duration, bool) {
	v, ok := m.Lookup(OptionIPLeaseTime)
	if !ok || len(v) != 4 {
		return 0, false
	}
	return time.Duration(binary.BigEndian.Uint32(v)) * time.Second, true
}

func LookupSubnetMask(m OptionMap) (net.IPMask, bool) {
	ip, ok := LookupIP(m, OptionSubnetMask)
	if !ok {
		return nil, false
	}
	return net.IPMask(ip), true
}

func LookupRouters(m OptionMap) (*IPIterator, bool) {
	return LookupIPs(m, OptionRouter)
}

func LookupDomainNameServers(m OptionMap) (*IPIterator, bool) {
	return LookupIPs(m, OptionDomainNameServer)
}

func LookupRequestedIP(m OptionMap) (net.IP, bool) {
	return LookupIP(m, OptionRequestedIP)
}

func LookupServerIdentifier(m OptionMap) (net.IP, bool) {
	return LookupIP(m, OptionServerIdentifier)
}

func LookupHostName(m OptionMap) (string, bool) {
	v, ok := m.Lookup(OptionHostname)
	return string(v), ok
}

func LookupDomainName(m OptionMap) (string, bool) {
	v, ok := m.Lookup(OptionDomainName)
	return string(v), ok
}

// LookupParameterRequestList returns the codes listed in option 55, in the
// order the client sent them.
func LookupParameterRequestList(m OptionMap) ([]OptionCode, bool) {
	v, ok := m.Lookup(OptionParameterRequestList)
	if !ok {
		return nil, false
	}
	codes := make([]OptionCode, len(v))
	for i, c := range v {
		codes[i] = OptionCode(c)
	}
	return codes, true
}

func LookupClientIdentifier(m OptionMap) ([]byte, bool) {
	return m.Lookup(OptionClientIdentifier)
}

// IPIterator yields the addresses of a list-valued option in order.
type IPIterator struct {
	b []byte
}

// Next returns the next address.
func (it *IPIterator) Next() (net.IP, bool) {
	if len(it.b) < net.IPv4len {
		return nil, false
	}
	ip := BytesToIP(it.b[:net.IPv4len])
	it.b = it.b[net.IPv4len:]
	return ip, true
}

// Len returns the number of addresses not yet returned.
func (it *IPIterator) Len() int { return len(it.b) / net.IPv4len }

// All drains the iterator.
func (it *IPIterator) All() []net.IP {
	ips := make([]net.IP, 0, it.Len())
	for {
		ip, ok := it.Next()
		if !ok {
			return ips
		}
		ips = append(ips, ip)
	}
}
